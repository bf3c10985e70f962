package interfaces

import "github.com/mustafakart000/hospital-backend/pkg/types"

// ReservationRepository persists appointment bookings
type ReservationRepository interface {
	Create(reservation *types.Reservation) error
	GetByID(id string) (*types.ReservationDetail, error)
	GetAll() ([]*types.ReservationDetail, error)
	Update(id string, reservation *types.Reservation) error
	Delete(id string) error
	ExistsAtSlot(date, timeOfDay string) (bool, error)
}

// ReservationService implements the booking workflow
type ReservationService interface {
	CreateReservation(patientID string, req *types.ReservationRequest) (*types.ReservationResponse, error)
	GetReservation(id string) (*types.ReservationResponse, error)
	GetAllReservations() ([]*types.ReservationResponse, error)
	UpdateReservation(id string, req *types.ReservationRequest) (*types.ReservationResponse, error)
	DeleteReservation(id string) error
	GetDoctorsBySpeciality(catalogID int64) ([]*types.DoctorListItem, error)
	ListSpecialities() ([]*types.SpecialityResponse, error)
}

// CatalogRepository maintains the speciality lookup table
type CatalogRepository interface {
	Seed() error
	List() ([]*types.SpecialityRow, error)
	GetByID(id int64) (*types.SpecialityRow, error)
}
