package types

import "time"

// Role represents the access tier of an account
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Account represents a system account. Role discriminates the variant:
// DOCTOR accounts carry a DoctorProfile, PATIENT accounts a PatientProfile.
type Account struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	NationalID   string    `json:"national_id" db:"national_id"`
	Name         string    `json:"name" db:"name"`
	Surname      string    `json:"surname" db:"surname"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	BirthDate    time.Time `json:"birth_date" db:"birth_date"`
	BloodType    string    `json:"blood_type" db:"blood_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Doctor  *DoctorProfile  `json:"doctor,omitempty"`
	Patient *PatientProfile `json:"patient,omitempty"`
}

// DoctorProfile holds the doctor-specific payload
type DoctorProfile struct {
	DiplomaNo  string     `json:"diploma_no" db:"diploma_no"`
	Title      string     `json:"title" db:"title"`
	Speciality Speciality `json:"speciality" db:"speciality"`
}

// PatientProfile holds the patient-specific payload
type PatientProfile struct {
	MedicalHistory string `json:"medical_history" db:"medical_history"`
}

// Credentials represents a login request. Username logins carry Username,
// doctor logins carry NationalID instead.
type Credentials struct {
	Username   string `json:"username,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Password   string `json:"password"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
	Message  string `json:"message"`
}

// RegisterRequest represents registration data shared by all variants
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	NationalID string `json:"national_id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	BirthDate  string `json:"birth_date"`
	BloodType  string `json:"blood_type"`

	// Doctor registration only
	DiplomaNo  string `json:"diploma_no,omitempty"`
	Title      string `json:"title,omitempty"`
	Speciality string `json:"speciality,omitempty"`

	// Patient registration only
	MedicalHistory string `json:"medical_history,omitempty"`
}

// AccountSummary is the shape returned for the current account
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// DoctorUpdates represents a doctor profile update
type DoctorUpdates struct {
	Name       string `json:"name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	DiplomaNo  string `json:"diploma_no,omitempty"`
	Title      string `json:"title,omitempty"`
	Speciality string `json:"speciality,omitempty"`
}

// DoctorListItem is the row shape of doctor listings
type DoctorListItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Speciality string `json:"speciality"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}

// DoctorDetail is the full doctor view
type DoctorDetail struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Speciality string `json:"speciality"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	BirthDate  string `json:"birth_date"`
	NationalID string `json:"national_id"`
	BloodType  string `json:"blood_type"`
	DiplomaNo  string `json:"diploma_no"`
	Title      string `json:"title"`
}

// PatientDetail is the full patient view
type PatientDetail struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	BirthDate      string `json:"birth_date"`
	NationalID     string `json:"national_id"`
	BloodType      string `json:"blood_type"`
	Role           Role   `json:"role"`
	MedicalHistory string `json:"medical_history"`
}
