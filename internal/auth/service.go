package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/monitoring"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

const birthDateLayout = "2006-01-02"

// Bootstrap admin credentials. The password is rotated out of band after
// first deployment.
const (
	bootstrapAdminUsername   = "admin"
	bootstrapAdminPassword   = "admin"
	bootstrapAdminNationalID = "22345678901"
	bootstrapAdminEmail      = "admin1@example.com"
)

// Service implements account authentication and registration
type Service struct {
	accounts  interfaces.AccountRepository
	tokens    interfaces.TokenService
	passwords interfaces.PasswordManager
	logger    *logger.Logger
	metrics   *monitoring.MetricsCollector
}

// NewService creates a new authentication service
func NewService(
	accounts interfaces.AccountRepository,
	tokens interfaces.TokenService,
	passwords interfaces.PasswordManager,
	log *logger.Logger,
	metrics *monitoring.MetricsCollector,
) *Service {
	return &Service{
		accounts:  accounts,
		tokens:    tokens,
		passwords: passwords,
		logger:    log,
		metrics:   metrics,
	}
}

// Login authenticates an account by username and password. The issued
// token's subject is the username.
func (s *Service) Login(credentials *types.Credentials) (*types.LoginResponse, error) {
	if credentials.Username == "" || credentials.Password == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "username and password are required")
	}

	account, err := s.accounts.GetByUsername(credentials.Username)
	if err != nil {
		s.recordAuthFailure("login", credentials.Username)
		return nil, types.NewAuthenticationError(types.ErrCodeInvalidCredentials, "invalid username or password")
	}

	if err := s.checkPassword(account, credentials.Password); err != nil {
		s.recordAuthFailure("login", credentials.Username)
		return nil, err
	}

	token, err := s.tokens.Issue(account.Username)
	if err != nil {
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to issue token", err)
	}

	s.recordAuthSuccess("login", account.ID)
	return &types.LoginResponse{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
		Token:    token,
		Message:  "login successful",
	}, nil
}

// DoctorLogin authenticates a doctor by national ID and password. The
// issued token's subject is the national ID, not the username.
func (s *Service) DoctorLogin(credentials *types.Credentials) (*types.LoginResponse, error) {
	if credentials.NationalID == "" || credentials.Password == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "national id and password are required")
	}

	account, err := s.accounts.GetByNationalID(credentials.NationalID)
	if err != nil || account.Role != types.RoleDoctor {
		s.recordAuthFailure("doctor_login", credentials.NationalID)
		return nil, types.NewAuthenticationError(types.ErrCodeInvalidCredentials, "invalid national id or password")
	}

	if err := s.checkPassword(account, credentials.Password); err != nil {
		s.recordAuthFailure("doctor_login", credentials.NationalID)
		return nil, err
	}

	token, err := s.tokens.Issue(account.NationalID)
	if err != nil {
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to issue token", err)
	}

	s.recordAuthSuccess("doctor_login", account.ID)
	return &types.LoginResponse{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
		Token:    token,
		Message:  "login successful",
	}, nil
}

// RegisterPatient creates a new patient account
func (s *Service) RegisterPatient(req *types.RegisterRequest) error {
	account, err := s.buildAccount(req, types.RolePatient)
	if err != nil {
		return err
	}
	account.Patient = &types.PatientProfile{
		MedicalHistory: req.MedicalHistory,
	}

	if err := s.accounts.Create(account); err != nil {
		return err
	}

	s.logger.Audit(account.ID, "register", "patient", true)
	return nil
}

// RegisterDoctor creates a new doctor account
func (s *Service) RegisterDoctor(req *types.RegisterRequest) error {
	speciality, err := resolveSpeciality(req.Speciality)
	if err != nil {
		return err
	}

	account, err := s.buildAccount(req, types.RoleDoctor)
	if err != nil {
		return err
	}
	account.Doctor = &types.DoctorProfile{
		DiplomaNo:  req.DiplomaNo,
		Title:      req.Title,
		Speciality: speciality,
	}

	if err := s.accounts.Create(account); err != nil {
		return err
	}

	s.logger.Audit(account.ID, "register", "doctor", true)
	return nil
}

// RegisterAdmin creates a new administrator account
func (s *Service) RegisterAdmin(req *types.RegisterRequest) error {
	account, err := s.buildAccount(req, types.RoleAdmin)
	if err != nil {
		return err
	}

	if err := s.accounts.Create(account); err != nil {
		return err
	}

	s.logger.Audit(account.ID, "register", "admin", true)
	return nil
}

// CurrentUser resolves a token subject to its account summary. Subjects
// are usernames for admins and patients, national IDs for doctors logged
// in through the doctor flow, so both lookups are tried.
func (s *Service) CurrentUser(subject string) (*types.AccountSummary, error) {
	account, err := s.resolveSubject(subject)
	if err != nil {
		return nil, err
	}
	return &types.AccountSummary{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role,
	}, nil
}

// ResolveSubject looks up the account behind a token subject
func (s *Service) ResolveSubject(subject string) (*types.Account, error) {
	return s.resolveSubject(subject)
}

// EnsureAdmin creates the bootstrap administrator account if it does not
// already exist. Safe to call on every startup.
func (s *Service) EnsureAdmin() error {
	exists, err := s.accounts.ExistsByUsername(bootstrapAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to check bootstrap admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := s.passwords.HashPassword(bootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	// national_id and email are UNIQUE columns; the bootstrap row must
	// carry real values, not empty strings.
	now := time.Now()
	account := &types.Account{
		ID:           uuid.New().String(),
		Username:     bootstrapAdminUsername,
		PasswordHash: hash,
		Role:         types.RoleAdmin,
		NationalID:   bootstrapAdminNationalID,
		Name:         "System",
		Surname:      "Administrator",
		Email:        bootstrapAdminEmail,
		BirthDate:    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(account); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	s.logger.WithField("username", bootstrapAdminUsername).Info("Bootstrap admin account created")
	return nil
}

func (s *Service) resolveSubject(subject string) (*types.Account, error) {
	account, err := s.accounts.GetByUsername(subject)
	if err == nil {
		return account, nil
	}
	account, err = s.accounts.GetByNationalID(subject)
	if err != nil {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "account not found")
	}
	return account, nil
}

func (s *Service) checkPassword(account *types.Account, password string) error {
	ok, err := s.passwords.VerifyPassword(account.PasswordHash, password)
	if err != nil {
		return types.NewInternalError(types.ErrCodeInternalError, "failed to verify password", err)
	}
	if !ok {
		return types.NewAuthenticationError(types.ErrCodeInvalidCredentials, "invalid username or password")
	}
	return nil
}

// buildAccount validates shared registration fields, enforces uniqueness
// and assembles a persistable account
func (s *Service) buildAccount(req *types.RegisterRequest, role types.Role) (*types.Account, error) {
	if req.Username == "" || req.Password == "" || req.NationalID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "username, password and national id are required")
	}

	if err := s.checkUniqueness(req); err != nil {
		return nil, err
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to hash password", err)
	}

	var birthDate time.Time
	if req.BirthDate != "" {
		birthDate, err = time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			return nil, types.NewValidationError(types.ErrCodeInvalidInput, "birth date must be formatted as YYYY-MM-DD")
		}
	}

	now := time.Now()
	return &types.Account{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		NationalID:   req.NationalID,
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		BirthDate:    birthDate,
		BloodType:    req.BloodType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Service) checkUniqueness(req *types.RegisterRequest) error {
	taken, err := s.accounts.ExistsByUsername(req.Username)
	if err != nil {
		return types.NewInternalError(types.ErrCodeInternalError, "failed to check username", err)
	}
	if taken {
		return types.NewConflictError(types.ErrCodeAlreadyExists, "username is already registered")
	}

	taken, err = s.accounts.ExistsByNationalID(req.NationalID)
	if err != nil {
		return types.NewInternalError(types.ErrCodeInternalError, "failed to check national id", err)
	}
	if taken {
		return types.NewConflictError(types.ErrCodeAlreadyExists, "national id is already registered")
	}

	if req.Email != "" {
		taken, err = s.accounts.ExistsByEmail(req.Email)
		if err != nil {
			return types.NewInternalError(types.ErrCodeInternalError, "failed to check email", err)
		}
		if taken {
			return types.NewConflictError(types.ErrCodeAlreadyExists, "email is already registered")
		}
	}
	return nil
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
	return "", types.NewValidationError(types.ErrCodeInvalidSpeciality, fmt.Sprintf("unknown speciality: %s", raw))
}

func (s *Service) recordAuthSuccess(method, accountID string) {
	if s.metrics != nil {
		s.metrics.RecordAuthAttempt(method, "success")
	}
	s.logger.Audit(accountID, method, "session", true)
}

func (s *Service) recordAuthFailure(method, subject string) {
	if s.metrics != nil {
		s.metrics.RecordAuthAttempt(method, "failure")
	}
	s.logger.Security("authentication_failed", subject)
}
