// Package auth gates the review API behind a single configured
// reviewer account with JWT sessions.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Service validates reviewer credentials and issues session tokens.
// The account is configured at startup rather than stored in the
// database; this is a single-operator internal tool.
type Service struct {
	secret       []byte
	email        string
	passwordHash string
}

// NewService creates an auth service for the configured reviewer. The
// password is hashed at construction so the plaintext never outlives
// startup.
func NewService(secret, email, password string) (*Service, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Service{
		secret:       []byte(secret),
		email:        email,
		passwordHash: hash,
	}, nil
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckCredentials reports whether the given email and password match
// the configured reviewer account.
func (s *Service) CheckCredentials(email, password string) bool {
	if email != s.email {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
}
