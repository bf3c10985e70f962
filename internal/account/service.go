package account

import (
	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

const birthDateLayout = "2006-01-02"

// Service implements doctor and patient directory operations
type Service struct {
	accounts interfaces.AccountRepository
	logger   *logger.Logger
}

// NewService creates a new account service
func NewService(accounts interfaces.AccountRepository, log *logger.Logger) *Service {
	return &Service{
		accounts: accounts,
		logger:   log,
	}
}

// GetAllDoctors returns every registered doctor
func (s *Service) GetAllDoctors() ([]*types.DoctorListItem, error) {
	accounts, err := s.accounts.ListDoctors()
	if err != nil {
		return nil, err
	}

	items := make([]*types.DoctorListItem, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, doctorListItem(account))
	}
	return items, nil
}

// GetDoctorByID returns the full view of one doctor
func (s *Service) GetDoctorByID(id string) (*types.DoctorDetail, error) {
	account, err := s.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account.Role != types.RoleDoctor || account.Doctor == nil {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "doctor not found")
	}

	return &types.DoctorDetail{
		ID:         account.ID,
		Username:   account.Username,
		Name:       account.Name,
		Surname:    account.Surname,
		Speciality: account.Doctor.Speciality.DisplayName(),
		Email:      account.Email,
		Phone:      account.Phone,
		Address:    account.Address,
		BirthDate:  account.BirthDate.Format(birthDateLayout),
		NationalID: account.NationalID,
		BloodType:  account.BloodType,
		DiplomaNo:  account.Doctor.DiplomaNo,
		Title:      account.Doctor.Title,
	}, nil
}

// UpdateDoctor applies a partial update to a doctor
func (s *Service) UpdateDoctor(id string, updates *types.DoctorUpdates) error {
	columns := make(map[string]interface{})
	if updates.Name != "" {
		columns["name"] = updates.Name
	}
	if updates.Surname != "" {
		columns["surname"] = updates.Surname
	}
	if updates.Email != "" {
		columns["email"] = updates.Email
	}
	if updates.Phone != "" {
		columns["phone"] = updates.Phone
	}
	if updates.Address != "" {
		columns["address"] = updates.Address
	}
	if updates.DiplomaNo != "" {
		columns["diploma_no"] = updates.DiplomaNo
	}
	if updates.Title != "" {
		columns["title"] = updates.Title
	}
	if updates.Speciality != "" {
		speciality := types.Speciality(updates.Speciality)
		if !speciality.Valid() {
			resolved, ok := types.SpecialityByDisplayName(updates.Speciality)
			if !ok {
				return types.NewValidationError(types.ErrCodeInvalidSpeciality, "unknown speciality: "+updates.Speciality)
			}
			speciality = resolved
		}
		columns["speciality"] = speciality
	}

	if len(columns) == 0 {
		return types.NewValidationError(types.ErrCodeInvalidInput, "no updatable fields provided")
	}
	return s.accounts.UpdateDoctor(id, columns)
}

// DeleteDoctor removes a doctor account
func (s *Service) DeleteDoctor(id string) error {
	return s.accounts.DeleteDoctor(id)
}

// GetPatientByID returns the full view of one patient
func (s *Service) GetPatientByID(id string) (*types.PatientDetail, error) {
	account, err := s.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account.Role != types.RolePatient || account.Patient == nil {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "patient not found")
	}

	return &types.PatientDetail{
		ID:             account.ID,
		Username:       account.Username,
		Name:           account.Name,
		Surname:        account.Surname,
		Email:          account.Email,
		Phone:          account.Phone,
		Address:        account.Address,
		BirthDate:      account.BirthDate.Format(birthDateLayout),
		NationalID:     account.NationalID,
		BloodType:      account.BloodType,
		Role:           account.Role,
		MedicalHistory: account.Patient.MedicalHistory,
	}, nil
}

func doctorListItem(account *types.Account) *types.DoctorListItem {
	item := &types.DoctorListItem{
		ID:      account.ID,
		Name:    account.Name,
		Surname: account.Surname,
		Email:   account.Email,
		Phone:   account.Phone,
		Address: account.Address,
	}
	if account.Doctor != nil {
		item.Speciality = account.Doctor.Speciality.DisplayName()
	}
	return item
}
