package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"vontara-backend/internal/middleware"
)

// AuthService gates the admin portal behind a single shared password. This is
// a convenience gate for a small content team, not a security boundary.
type AuthService struct {
	jwt          *middleware.JWTAuth
	passwordHash []byte
}

func NewAuthService(jwt *middleware.JWTAuth, adminPasswordHash string) *AuthService {
	return &AuthService{
		jwt:          jwt,
		passwordHash: []byte(adminPasswordHash),
	}
}

// Login checks the shared admin password and returns a signed access token.
func (s *AuthService) Login(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", &ValidationError{Fields: map[string]string{"password": "Password is required"}}
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", &UnauthorizedError{Message: "Invalid password"}
	}

	token, err := s.jwt.GenerateAdminToken()
	if err != nil {
		return "", err
	}
	return token, nil
}

// Service error types, mapped to HTTP status codes by the handlers.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }
