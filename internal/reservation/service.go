package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/monitoring"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

const defaultStatus = "ACTIVE"

// Service implements the booking workflow
type Service struct {
	reservations interfaces.ReservationRepository
	accounts     interfaces.AccountRepository
	catalog      interfaces.CatalogRepository
	logger       *logger.Logger
	metrics      *monitoring.MetricsCollector
}

// NewService creates a new reservation service
func NewService(
	reservations interfaces.ReservationRepository,
	accounts interfaces.AccountRepository,
	catalog interfaces.CatalogRepository,
	log *logger.Logger,
	metrics *monitoring.MetricsCollector,
) *Service {
	return &Service{
		reservations: reservations,
		accounts:     accounts,
		catalog:      catalog,
		logger:       log,
		metrics:      metrics,
	}
}

// CreateReservation books a slot for the authenticated patient. The
// speciality must name a catalog entry and the slot must be free.
func (s *Service) CreateReservation(patientID string, req *types.ReservationRequest) (*types.ReservationResponse, error) {
	speciality, err := resolveSpeciality(req.Speciality)
	if err != nil {
		s.recordReservation("create", "invalid_speciality")
		return nil, err
	}

	date, timeOfDay, err := parseSlot(req.Date, req.Time)
	if err != nil {
		s.recordReservation("create", "invalid_input")
		return nil, err
	}

	doctor, err := s.accounts.GetByID(req.DoctorID)
	if err != nil || doctor.Role != types.RoleDoctor {
		s.recordReservation("create", "doctor_not_found")
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "doctor not found")
	}

	taken, err := s.reservations.ExistsAtSlot(date.Format(dateLayout), timeOfDay.Format(timeLayout))
	if err != nil {
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to check slot availability", err)
	}
	if taken {
		s.recordSlotConflict()
		return nil, types.NewConflictError(types.ErrCodeSlotTaken, "the requested slot is already booked")
	}

	status := req.Status
	if status == "" {
		status = defaultStatus
	}

	now := time.Now()
	reservation := &types.Reservation{
		ID:         uuid.New().String(),
		DoctorID:   doctor.ID,
		PatientID:  patientID,
		Date:       date,
		Time:       timeOfDay,
		Status:     status,
		Speciality: speciality,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reservations.Create(reservation); err != nil {
		if herr, ok := err.(*types.HospitalError); ok && herr.Code == types.ErrCodeSlotTaken {
			s.recordSlotConflict()
		}
		return nil, err
	}

	s.recordReservation("create", "success")
	return s.GetReservation(reservation.ID)
}

// GetReservation returns one reservation
func (s *Service) GetReservation(id string) (*types.ReservationResponse, error) {
	detail, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(detail), nil
}

// GetAllReservations returns every reservation
func (s *Service) GetAllReservations() ([]*types.ReservationResponse, error) {
	details, err := s.reservations.GetAll()
	if err != nil {
		return nil, err
	}
	return toResponses(details), nil
}

// UpdateReservation rewrites a reservation from the request in full.
// Every field is taken from the request; the slot is not re-probed
// here, a colliding update is caught by the store constraint.
func (s *Service) UpdateReservation(id string, req *types.ReservationRequest) (*types.ReservationResponse, error) {
	existing, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}

	speciality, err := resolveSpeciality(req.Speciality)
	if err != nil {
		return nil, err
	}

	date, timeOfDay, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	if req.DoctorID == "" || req.PatientID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "doctorId and patientId are required")
	}

	status := req.Status
	if status == "" {
		status = defaultStatus
	}

	updated := existing.Reservation
	updated.DoctorID = req.DoctorID
	updated.PatientID = req.PatientID
	updated.Date = date
	updated.Time = timeOfDay
	updated.Status = status
	updated.Speciality = speciality

	if err := s.reservations.Update(id, &updated); err != nil {
		return nil, err
	}

	s.recordReservation("update", "success")
	return s.GetReservation(id)
}

// DeleteReservation removes a reservation
func (s *Service) DeleteReservation(id string) error {
	if err := s.reservations.Delete(id); err != nil {
		return err
	}
	s.recordReservation("delete", "success")
	return nil
}

// GetDoctorsBySpeciality lists the doctors available for a catalog
// entry, so patients can pick one while booking. The id is the
// speciality's catalog id, not a doctor id.
func (s *Service) GetDoctorsBySpeciality(catalogID int64) ([]*types.DoctorListItem, error) {
	row, err := s.catalog.GetByID(catalogID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.ListDoctorsBySpeciality(row.Code)
	if err != nil {
		return nil, err
	}

	items := make([]*types.DoctorListItem, 0, len(accounts))
	for _, account := range accounts {
		item := &types.DoctorListItem{
			ID:      account.ID,
			Name:    account.Name,
			Surname: account.Surname,
		}
		if account.Doctor != nil {
			item.Speciality = account.Doctor.Speciality.DisplayName()
		}
		items = append(items, item)
	}
	return items, nil
}

// ListSpecialities returns the speciality catalog for booking forms
func (s *Service) ListSpecialities() ([]*types.SpecialityResponse, error) {
	rows, err := s.catalog.List()
	if err != nil {
		return nil, err
	}

	out := make([]*types.SpecialityResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &types.SpecialityResponse{ID: row.ID, Name: row.DisplayName})
	}
	return out, nil
}

// resolveSpeciality accepts either the enum code or the display name
func resolveSpeciality(raw string) (types.Speciality, error) {
	if raw == "" {
		return "", types.NewValidationError(types.ErrCodeInvalidSpeciality, "speciality is required")
	}
	candidate := types.Speciality(raw)
	if candidate.Valid() {
		return candidate, nil
	}
	if sp, ok := types.SpecialityByDisplayName(raw); ok {
		return sp, nil
	}
	return "", types.NewValidationError(types.ErrCodeInvalidSpeciality, "unknown speciality: "+raw)
}

// parseSlot validates the textual date and time of a booking request
func parseSlot(rawDate, rawTime string) (time.Time, time.Time, error) {
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return time.Time{}, time.Time{}, types.NewValidationError(types.ErrCodeInvalidInput, "date must be formatted as YYYY-MM-DD")
	}

	timeOfDay, err := time.Parse(timeLayout, rawTime)
	if err != nil {
		timeOfDay, err = time.Parse("15:04", rawTime)
		if err != nil {
			return time.Time{}, time.Time{}, types.NewValidationError(types.ErrCodeInvalidInput, "time must be formatted as HH:MM or HH:MM:SS")
		}
	}
	return date, timeOfDay, nil
}

func toResponse(detail *types.ReservationDetail) *types.ReservationResponse {
	return &types.ReservationResponse{
		ID:             detail.ID,
		DoctorID:       detail.DoctorID,
		DoctorName:     detail.DoctorName,
		DoctorSurname:  detail.DoctorSurname,
		PatientID:      detail.PatientID,
		PatientName:    detail.PatientName,
		PatientSurname: detail.PatientSurname,
		Date:           detail.Date.Format(dateLayout),
		Time:           detail.Time.Format(timeLayout),
		Status:         detail.Status,
		Speciality:     detail.Speciality.DisplayName(),
	}
}

func toResponses(details []*types.ReservationDetail) []*types.ReservationResponse {
	responses := make([]*types.ReservationResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, toResponse(detail))
	}
	return responses
}

func (s *Service) recordReservation(operation, status string) {
	if s.metrics != nil {
		s.metrics.RecordReservation(operation, status)
	}
}

func (s *Service) recordSlotConflict() {
	if s.metrics != nil {
		s.metrics.RecordSlotConflict()
		s.metrics.RecordReservation("create", "slot_taken")
	}
}
