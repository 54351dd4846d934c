package service

import (
	"database/sql"
	"errors"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"go-publisher-api/repository"
)

var ErrWrongOldPassword = errors.New("old password is incorrect")

// UserService handles account provisioning and password management.
type UserService struct {
	userRepo repository.IUserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// ProvisionUser creates an account for the given username, or resets the
// password and role when the username already exists. This is the admin
// path for handing out initial credentials.
func (s *UserService) ProvisionUser(username, password string, role model.Role) (*model.User, error) {
	if !model.IsValidRole(role) {
		return nil, errors.New("invalid role specified")
	}

	hashed, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByUsername(username)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	if existing != nil {
		logger.Log.WithField("user_id", existing.ID).Info("Resetting existing account")
		if err := s.userRepo.UpdateUserPassword(existing.ID, hashed); err != nil {
			return nil, err
		}
		if err := s.userRepo.UpdateUserRole(existing.ID, string(role)); err != nil {
			return nil, err
		}
		existing.Role = role
		existing.Password = ""
		return existing, nil
	}

	user := &model.User{
		Username: username,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// ChangePassword lets a user replace their own password after proving
// they know the current one.
func (s *UserService) ChangePassword(userID int, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}

	if !s.auth.CheckPasswordHash(oldPassword, user.Password) {
		return ErrWrongOldPassword
	}

	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateUserPassword(user.ID, hashed)
}

// ListUsers returns every account. For admin use only.
func (s *UserService) ListUsers() ([]*model.User, error) {
	users, err := s.userRepo.GetAllUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

// UpdateUserRole validates the role and calls the repository to update it.
func (s *UserService) UpdateUserRole(userID int, newRole model.Role) error {
	// We ensure that only valid roles can be assigned.
	if !model.IsValidRole(newRole) {
		return errors.New("invalid role specified")
	}

	return s.userRepo.UpdateUserRole(userID, string(newRole))
}

// SyncRoleByUsername updates the role of the account with the given
// username, if one exists. A missing account is not an error: employees
// without a login simply have nothing to sync.
func (s *UserService) SyncRoleByUsername(username string, newRole model.Role) error {
	if !model.IsValidRole(newRole) {
		return errors.New("invalid role specified")
	}

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}
	return s.userRepo.UpdateUserRole(user.ID, string(newRole))
}
