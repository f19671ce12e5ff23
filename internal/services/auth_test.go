package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"vontara-backend/internal/middleware"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	jwtAuth := middleware.NewJWTAuth("test-secret")
	svc := NewAuthService(jwtAuth, string(hash))

	t.Run("valid password", func(t *testing.T) {
		token, err := svc.Login(context.Background(), "correct-horse")
		if err != nil {
			t.Fatalf("Expected login to succeed: %v", err)
		}
		if !jwtAuth.VerifyAdminToken(token) {
			t.Error("Expected issued token to carry a valid admin claim")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "wrong")
		if _, ok := err.(*UnauthorizedError); !ok {
			t.Errorf("Expected UnauthorizedError, got %v", err)
		}
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "")
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("Expected ValidationError, got %v", err)
		}
	})
}
