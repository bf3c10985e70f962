package types

import "time"

// Reservation represents a booked slot binding one doctor, one patient,
// a date and a time. Speciality is a denormalized copy of the doctor's
// speciality at booking time.
type Reservation struct {
	ID         string     `json:"id" db:"id"`
	DoctorID   string     `json:"doctor_id" db:"doctor_id"`
	PatientID  string     `json:"patient_id" db:"patient_id"`
	Date       time.Time  `json:"date" db:"reservation_date"`
	Time       time.Time  `json:"time" db:"reservation_time"`
	Status     string     `json:"status" db:"status"`
	Speciality Speciality `json:"speciality" db:"speciality"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// ReservationRequest is the booking request shape. Date is ISO YYYY-MM-DD,
// Time is HH:MM or HH:MM:SS, Speciality is a catalog display name.
type ReservationRequest struct {
	DoctorID   string `json:"doctor_id"`
	PatientID  string `json:"patient_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Speciality string `json:"speciality"`
}

// ReservationDetail is a reservation joined with the names of its doctor
// and patient, as read back from the store.
type ReservationDetail struct {
	Reservation
	DoctorName     string `db:"doctor_name"`
	DoctorSurname  string `db:"doctor_surname"`
	PatientName    string `db:"patient_name"`
	PatientSurname string `db:"patient_surname"`
}

// ReservationResponse is the flattened booking view: ids stringified,
// doctor/patient names joined in, speciality resolved to its display name.
type ReservationResponse struct {
	ID             string `json:"id"`
	DoctorID       string `json:"doctor_id"`
	DoctorName     string `json:"doctor_name"`
	DoctorSurname  string `json:"doctor_surname"`
	PatientID      string `json:"patient_id"`
	PatientName    string `json:"patient_name"`
	PatientSurname string `json:"patient_surname"`
	Date           string `json:"reservation_date"`
	Time           string `json:"reservation_time"`
	Status         string `json:"status"`
	Speciality     string `json:"speciality"`
}
