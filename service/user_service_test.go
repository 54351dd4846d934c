// service/user_service_test.go
package service

import (
	"database/sql"
	"errors"
	"go-publisher-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_ProvisionUser(t *testing.T) {
	auth := NewAuthService(nil)

	t.Run("creates a new account", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "new_editor").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "new_editor" && u.Role == model.RoleEditor && u.Password != "secret123"
		})).Return(nil).Once()

		userService := NewUserService(mockRepo, auth)
		user, err := userService.ProvisionUser("new_editor", "secret123", model.RoleEditor)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Empty(t, user.Password)
		mockRepo.AssertExpectations(t)
	})

	t.Run("resets an existing account", func(t *testing.T) {
		existing := &model.User{ID: 12, Username: "old_hand", Role: model.RolePrinter}
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "old_hand").Return(existing, nil).Once()
		mockRepo.On("UpdateUserPassword", 12, mock.AnythingOfType("string")).Return(nil).Once()
		mockRepo.On("UpdateUserRole", 12, "warehouse").Return(nil).Once()

		userService := NewUserService(mockRepo, auth)
		user, err := userService.ProvisionUser("old_hand", "freshpass", model.RoleWarehouse)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleWarehouse, user.Role)
		mockRepo.AssertNotCalled(t, "CreateUser")
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		userService := NewUserService(mockRepo, auth)

		_, err := userService.ProvisionUser("anyone", "secret123", "janitor")

		assert.Error(t, err)
		assert.Equal(t, "invalid role specified", err.Error())
		mockRepo.AssertNotCalled(t, "CreateUser")
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	auth := NewAuthService(nil)
	hash, err := auth.HashPassword("current-pass")
	assert.NoError(t, err)
	stored := &model.User{ID: 3, Username: "worker", Password: hash}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByID", 3).Return(stored, nil).Once()
		mockRepo.On("UpdateUserPassword", 3, mock.AnythingOfType("string")).Return(nil).Once()

		userService := NewUserService(mockRepo, auth)
		err := userService.ChangePassword(3, "current-pass", "next-pass")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByID", 3).Return(stored, nil).Once()

		userService := NewUserService(mockRepo, auth)
		err := userService.ChangePassword(3, "not-the-pass", "next-pass")

		assert.Equal(t, ErrWrongOldPassword, err)
		mockRepo.AssertNotCalled(t, "UpdateUserPassword")
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByID", 99).Return(nil, sql.ErrNoRows).Once()

		userService := NewUserService(mockRepo, auth)
		err := userService.ChangePassword(99, "whatever", "next-pass")

		assert.Equal(t, ErrUserNotFound, err)
	})
}

func TestUserService_UpdateUserRole(t *testing.T) {
	auth := NewAuthService(nil)

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("UpdateUserRole", 1, "admin").Return(nil).Once()

		userService := NewUserService(mockRepo, auth)
		err := userService.UpdateUserRole(1, model.RoleAdmin)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		expectedError := errors.New("database error")
		mockRepo.On("UpdateUserRole", 2, "sales").Return(expectedError).Once()

		userService := NewUserService(mockRepo, auth)
		err := userService.UpdateUserRole(2, model.RoleSales)

		assert.Error(t, err)
		assert.Equal(t, expectedError, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		userService := NewUserService(mockRepo, auth)

		err := userService.UpdateUserRole(3, "invalid_role")

		assert.Error(t, err)
		assert.Equal(t, "invalid role specified", err.Error())
		mockRepo.AssertNotCalled(t, "UpdateUserRole")
	})
}

func TestUserService_SyncRoleByUsername(t *testing.T) {
	auth := NewAuthService(nil)

	t.Run("syncs an existing account", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "linked").Return(&model.User{ID: 6, Username: "linked"}, nil).Once()
		mockRepo.On("UpdateUserRole", 6, "editor").Return(nil).Once()

		userService := NewUserService(mockRepo, auth)
		err := userService.SyncRoleByUsername("linked", model.RoleEditor)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing account is not an error", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsername", "no_account").Return(nil, sql.ErrNoRows).Once()

		userService := NewUserService(mockRepo, auth)
		err := userService.SyncRoleByUsername("no_account", model.RoleEditor)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "UpdateUserRole")
	})
}
