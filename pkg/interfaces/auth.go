package interfaces

import "github.com/mustafakart000/hospital-backend/pkg/types"

// TokenService issues and verifies signed identity tokens
type TokenService interface {
	Issue(subject string) (string, error)
	// Verify absorbs all parse, signature and expiry failures into ok=false.
	Verify(token string) (subject string, ok bool)
}

// PasswordManager hashes and verifies credentials
type PasswordManager interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) (bool, error)
}

// AuthService authenticates accounts and handles registration
type AuthService interface {
	Login(credentials *types.Credentials) (*types.LoginResponse, error)
	DoctorLogin(credentials *types.Credentials) (*types.LoginResponse, error)
	RegisterPatient(req *types.RegisterRequest) error
	RegisterDoctor(req *types.RegisterRequest) error
	RegisterAdmin(req *types.RegisterRequest) error
	CurrentUser(subject string) (*types.AccountSummary, error)
	EnsureAdmin() error
}
