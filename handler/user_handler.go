package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
)

// UserHandler holds dependencies for auth and account management
// handlers.
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// Login godoc
// @Summary      Authenticate a user
// @Description  Verifies the credentials and returns a signed access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Login credentials"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Malformed request body"
// @Failure      401  {object}  common.AppError "Unknown username or wrong password"
// @Router       /login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not process login", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"access_token": token})
	return nil
}

// ProvisionUser godoc
// @Summary      Create or reset a user account
// @Description  Admin operation: creates an account for the username, or resets the password and role when it already exists.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        account body model.ProvisionUserRequest true "Account details"
// @Success      200  {object}  model.User
// @Failure      400  {object}  common.AppError "Malformed request body or unknown role"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/users [post]
func (h *UserHandler) ProvisionUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ProvisionUserRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	logger.Log.WithField("username", req.Username).Info("Provision user request received")

	user, err := h.userService.ProvisionUser(req.Username, req.Password, req.Role)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not provision user", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
	return nil
}

// ChangePassword godoc
// @Summary      Change the caller's password
// @Description  Self-service password change; the old password is verified first.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        passwords body model.ChangePasswordRequest true "Old and new password"
// @Success      204  "Password updated"
// @Failure      400  {object}  common.AppError "Malformed request body or wrong old password"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/account/password [put]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ChangePasswordRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.userService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch err {
		case service.ErrWrongOldPassword:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case service.ErrUserNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not change password", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ListUsers godoc
// @Summary      List all user accounts
// @Description  Admin operation: returns every account without password hashes.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.User
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.userService.ListUsers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve users", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(users)
	return nil
}
