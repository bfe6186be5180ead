package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/ramatoys/storefront/internal/shared"
)

// Credentials is the single admin account configured for the shop.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Service verifies admin credentials.
type Service struct {
	creds Credentials
}

// NewService constructs a new Service.
func NewService(creds Credentials) *Service {
	return &Service{creds: creds}
}

// Authenticate checks username and password against the configured account.
func (s *Service) Authenticate(username, password string) (Result, error) {
	if s.creds.Username == "" || s.creds.PasswordHash == "" {
		return Anonymous, shared.ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return Anonymous, shared.ErrInvalidCredentials
	}
	return Result{Authenticated: true, Role: RoleAdmin, Username: s.creds.Username}, nil
}

// HashPassword returns the bcrypt hash to configure as ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
