package interfaces

import "github.com/mustafakart000/hospital-backend/pkg/types"

// AccountRepository is the durable record of accounts
type AccountRepository interface {
	Create(account *types.Account) error
	GetByID(id string) (*types.Account, error)
	GetByUsername(username string) (*types.Account, error)
	GetByNationalID(nationalID string) (*types.Account, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByNationalID(nationalID string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	ListDoctors() ([]*types.Account, error)
	ListDoctorsBySpeciality(speciality types.Speciality) ([]*types.Account, error)
	UpdateDoctor(id string, updates map[string]interface{}) error
	DeleteDoctor(id string) error
}

// DoctorService exposes doctor directory operations
type DoctorService interface {
	GetAllDoctors() ([]*types.DoctorListItem, error)
	GetDoctorByID(id string) (*types.DoctorDetail, error)
	UpdateDoctor(id string, updates *types.DoctorUpdates) error
	DeleteDoctor(id string) error
}

// PatientService exposes patient record operations
type PatientService interface {
	GetPatientByID(id string) (*types.PatientDetail, error)
}
