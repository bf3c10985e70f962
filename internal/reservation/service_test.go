package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(reservation *types.Reservation) error {
	args := m.Called(reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(id string) (*types.ReservationDetail, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ReservationDetail), args.Error(1)
}

func (m *MockReservationRepository) GetAll() ([]*types.ReservationDetail, error) {
	args := m.Called()
	return args.Get(0).([]*types.ReservationDetail), args.Error(1)
}

func (m *MockReservationRepository) Update(id string, reservation *types.Reservation) error {
	args := m.Called(id, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReservationRepository) ExistsAtSlot(date, timeOfDay string) (bool, error) {
	args := m.Called(date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(account *types.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(id string) (*types.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(username string) (*types.Account, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByNationalID(nationalID string) (*types.Account, error) {
	args := m.Called(nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ExistsByNationalID(nationalID string) (bool, error) {
	args := m.Called(nationalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ListDoctors() ([]*types.Account, error) {
	args := m.Called()
	return args.Get(0).([]*types.Account), args.Error(1)
}

func (m *MockAccountRepository) ListDoctorsBySpeciality(speciality types.Speciality) ([]*types.Account, error) {
	args := m.Called(speciality)
	return args.Get(0).([]*types.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateDoctor(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteDoctor(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Seed() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCatalogRepository) List() ([]*types.SpecialityRow, error) {
	args := m.Called()
	return args.Get(0).([]*types.SpecialityRow), args.Error(1)
}

func (m *MockCatalogRepository) GetByID(id int64) (*types.SpecialityRow, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SpecialityRow), args.Error(1)
}

func setupTestService() (*Service, *MockReservationRepository, *MockAccountRepository, *MockCatalogRepository) {
	mockReservations := &MockReservationRepository{}
	mockAccounts := &MockAccountRepository{}
	mockCatalog := &MockCatalogRepository{}
	service := NewService(mockReservations, mockAccounts, mockCatalog, logger.New("debug"), nil)
	return service, mockReservations, mockAccounts, mockCatalog
}

func bookedDetail(id string) *types.ReservationDetail {
	return &types.ReservationDetail{
		Reservation: types.Reservation{
			ID:         id,
			DoctorID:   "doctor-1",
			PatientID:  "patient-1",
			Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			Time:       time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC),
			Status:     "ACTIVE",
			Speciality: types.Cardiologist,
		},
		DoctorName:     "Bob",
		DoctorSurname:  "Hekim",
		PatientName:    "Alice",
		PatientSurname: "Hasta",
	}
}

func validRequest() *types.ReservationRequest {
	return &types.ReservationRequest{
		DoctorID:   "doctor-1",
		Date:       "2026-09-15",
		Time:       "14:30",
		Speciality: types.Cardiologist.DisplayName(),
	}
}

func TestService_CreateReservation(t *testing.T) {
	t.Run("successful booking", func(t *testing.T) {
		service, mockReservations, mockAccounts, _ := setupTestService()

		mockAccounts.On("GetByID", "doctor-1").Return(&types.Account{
			ID:   "doctor-1",
			Role: types.RoleDoctor,
		}, nil)
		mockReservations.On("ExistsAtSlot", "2026-09-15", "14:30:00").Return(false, nil)
		mockReservations.On("Create", mock.MatchedBy(func(r *types.Reservation) bool {
			return r.DoctorID == "doctor-1" &&
				r.PatientID == "patient-1" &&
				r.Speciality == types.Cardiologist &&
				r.Status == "ACTIVE" &&
				r.ID != ""
		})).Return(nil)
		mockReservations.On("GetByID", mock.AnythingOfType("string")).Return(bookedDetail("res-1"), nil)

		response, err := service.CreateReservation("patient-1", validRequest())

		require.NoError(t, err)
		assert.Equal(t, "2026-09-15", response.Date)
		assert.Equal(t, "14:30:00", response.Time)
		assert.Equal(t, types.Cardiologist.DisplayName(), response.Speciality)
		assert.Equal(t, "Bob", response.DoctorName)
		mockReservations.AssertExpectations(t)
	})

	t.Run("unknown speciality rejected before any lookup", func(t *testing.T) {
		service, mockReservations, mockAccounts, _ := setupTestService()

		req := validRequest()
		req.Speciality = "Falcılık"

		response, err := service.CreateReservation("patient-1", req)

		assert.Nil(t, response)
		var herr *types.HospitalError
		require.True(t, errors.As(err, &herr))
		assert.Equal(t, types.ErrCodeInvalidSpeciality, herr.Code)
		mockAccounts.AssertNotCalled(t, "GetByID", mock.Anything)
		mockReservations.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("occupied slot rejected", func(t *testing.T) {
		service, mockReservations, mockAccounts, _ := setupTestService()

		mockAccounts.On("GetByID", "doctor-1").Return(&types.Account{
			ID:   "doctor-1",
			Role: types.RoleDoctor,
		}, nil)
		mockReservations.On("ExistsAtSlot", "2026-09-15", "14:30:00").Return(true, nil)

		response, err := service.CreateReservation("patient-1", validRequest())

		assert.Nil(t, response)
		var herr *types.HospitalError
		require.True(t, errors.As(err, &herr))
		assert.Equal(t, types.ErrCodeSlotTaken, herr.Code)
		mockReservations.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		service, mockReservations, mockAccounts, _ := setupTestService()

		mockAccounts.On("GetByID", "doctor-1").Return(nil, types.NewNotFoundError(types.ErrCodeNotFound, "account not found"))

		response, err := service.CreateReservation("patient-1", validRequest())

		assert.Nil(t, response)
		assert.Error(t, err)
		mockReservations.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("malformed date", func(t *testing.T) {
		service, _, _, _ := setupTestService()

		req := validRequest()
		req.Date = "15/09/2026"

		_, err := service.CreateReservation("patient-1", req)
		assert.Error(t, err)
	})
}

func TestService_UpdateReservation(t *testing.T) {
	fullRequest := func() *types.ReservationRequest {
		return &types.ReservationRequest{
			DoctorID:   "doctor-2",
			PatientID:  "patient-2",
			Date:       "2026-09-16",
			Time:       "09:00",
			Status:     "CANCELLED",
			Speciality: string(types.Dermatologist),
		}
	}

	t.Run("rewrites every field from the request", func(t *testing.T) {
		service, mockReservations, _, _ := setupTestService()

		mockReservations.On("GetByID", "res-1").Return(bookedDetail("res-1"), nil)
		mockReservations.On("Update", "res-1", mock.MatchedBy(func(r *types.Reservation) bool {
			return r.DoctorID == "doctor-2" &&
				r.PatientID == "patient-2" &&
				r.Date.Format("2006-01-02") == "2026-09-16" &&
				r.Time.Format("15:04:05") == "09:00:00" &&
				r.Status == "CANCELLED" &&
				r.Speciality == types.Dermatologist
		})).Return(nil)

		response, err := service.UpdateReservation("res-1", fullRequest())

		require.NoError(t, err)
		assert.NotNil(t, response)
		mockReservations.AssertExpectations(t)
		mockReservations.AssertNotCalled(t, "ExistsAtSlot", mock.Anything, mock.Anything)
	})

	t.Run("empty status falls back to the default", func(t *testing.T) {
		service, mockReservations, _, _ := setupTestService()

		req := fullRequest()
		req.Status = ""

		mockReservations.On("GetByID", "res-1").Return(bookedDetail("res-1"), nil)
		mockReservations.On("Update", "res-1", mock.MatchedBy(func(r *types.Reservation) bool {
			return r.Status == "ACTIVE"
		})).Return(nil)

		_, err := service.UpdateReservation("res-1", req)
		require.NoError(t, err)
		mockReservations.AssertExpectations(t)
	})

	t.Run("incomplete request rejected", func(t *testing.T) {
		service, mockReservations, _, _ := setupTestService()

		mockReservations.On("GetByID", "res-1").Return(bookedDetail("res-1"), nil)

		req := fullRequest()
		req.Speciality = ""

		response, err := service.UpdateReservation("res-1", req)

		assert.Nil(t, response)
		var herr *types.HospitalError
		require.True(t, errors.As(err, &herr))
		assert.Equal(t, types.ErrCodeInvalidSpeciality, herr.Code)
		mockReservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing reservation", func(t *testing.T) {
		service, mockReservations, _, _ := setupTestService()

		mockReservations.On("GetByID", "ghost").Return(nil, types.NewNotFoundError(types.ErrCodeNotFound, "reservation not found"))

		response, err := service.UpdateReservation("ghost", fullRequest())
		assert.Nil(t, response)
		assert.Error(t, err)
	})
}

func TestService_GetDoctorsBySpeciality(t *testing.T) {
	t.Run("resolves the catalog id to a speciality", func(t *testing.T) {
		service, _, mockAccounts, mockCatalog := setupTestService()

		mockCatalog.On("GetByID", int64(5)).Return(&types.SpecialityRow{
			ID:          5,
			Code:        types.Dermatologist,
			DisplayName: types.Dermatologist.DisplayName(),
		}, nil)
		mockAccounts.On("ListDoctorsBySpeciality", types.Dermatologist).Return([]*types.Account{
			{
				ID:      "doctor-1",
				Name:    "Bob",
				Surname: "Hekim",
				Role:    types.RoleDoctor,
				Doctor:  &types.DoctorProfile{Speciality: types.Dermatologist},
			},
		}, nil)

		doctors, err := service.GetDoctorsBySpeciality(5)
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, "doctor-1", doctors[0].ID)
		assert.Equal(t, types.Dermatologist.DisplayName(), doctors[0].Speciality)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("absent catalog id", func(t *testing.T) {
		service, _, mockAccounts, mockCatalog := setupTestService()

		mockCatalog.On("GetByID", int64(999)).Return(nil, types.NewNotFoundError(types.ErrCodeNotFound, "speciality not found"))

		doctors, err := service.GetDoctorsBySpeciality(999)

		assert.Nil(t, doctors)
		var herr *types.HospitalError
		require.True(t, errors.As(err, &herr))
		assert.Equal(t, types.ErrCodeNotFound, herr.Code)
		mockAccounts.AssertNotCalled(t, "ListDoctorsBySpeciality", mock.Anything)
	})
}

func TestService_ListSpecialities(t *testing.T) {
	service, _, _, mockCatalog := setupTestService()

	mockCatalog.On("List").Return([]*types.SpecialityRow{
		{ID: 1, Code: types.Cardiologist, DisplayName: types.Cardiologist.DisplayName()},
		{ID: 2, Code: types.Dermatologist, DisplayName: types.Dermatologist.DisplayName()},
	}, nil)

	specialities, err := service.ListSpecialities()
	require.NoError(t, err)
	require.Len(t, specialities, 2)
	assert.Equal(t, int64(1), specialities[0].ID)
	assert.Equal(t, types.Cardiologist.DisplayName(), specialities[0].Name)
}

func TestService_DeleteReservation(t *testing.T) {
	service, mockReservations, _, _ := setupTestService()

	mockReservations.On("Delete", "res-1").Return(nil)

	assert.NoError(t, service.DeleteReservation("res-1"))
	mockReservations.AssertExpectations(t)
}
