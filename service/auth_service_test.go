// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"go-publisher-api/config"
	"go-publisher-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAuthService_HashAndCheckPassword ensures that password hashing and
// verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	// HashPassword and CheckPasswordHash don't touch the repository, so a
	// nil repository is fine for this test.
	authService := NewAuthService(nil)
	password := "mySecretPassword123"

	// 1. Test Hashing
	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	// 2. Test Successful Verification
	match := authService.CheckPasswordHash(password, hashedPassword)
	if !match {
		t.Errorf("authService.CheckPasswordHash() should have returned true for a matching password, but got false.")
	}

	// 3. Test Failed Verification
	wrongPassword := "notMyPassword"
	match = authService.CheckPasswordHash(wrongPassword, hashedPassword)
	if match {
		t.Errorf("authService.CheckPasswordHash() should have returned false for a non-matching password, but got true.")
	}
}

func TestAuthService_Login(t *testing.T) {
	config.AppConfig.JWT.SecretKey = "test-secret"

	authService := NewAuthService(nil)
	hash, err := authService.HashPassword("press-room-9")
	assert.NoError(t, err)
	stored := &model.User{ID: 5, Username: "operator", Password: hash, Role: model.RolePrinter}

	t.Run("successful login returns a token", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "operator").Return(stored, nil).Once()

		svc := NewAuthService(mockRepo)
		token, err := svc.Login("operator", "press-room-9")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "operator").Return(stored, nil).Once()

		svc := NewAuthService(mockRepo)
		_, err := svc.Login("operator", "wrong")

		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("unknown username maps to the same error", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "nobody").Return(nil, sql.ErrNoRows).Once()

		svc := NewAuthService(mockRepo)
		_, err := svc.Login("nobody", "anything")

		assert.Equal(t, ErrInvalidCredentials, err)
	})
}
