package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
	"strconv"
)

// LedgerHandler holds dependencies for ledger-related handlers.
type LedgerHandler struct {
	service *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler with its dependencies.
func NewLedgerHandler(s *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// GetRecords godoc
// @Summary      Query ledger records
// @Description  Returns the records of a ledger the caller is a member of, optionally bounded by an inclusive date range. Records come back ordered by date, then id.
// @Tags         ledgers
// @Produce      json
// @Security     BearerAuth
// @Param        ledgerId   path   int    true  "The ID of the ledger to query"
// @Param        start_date query  string false "Inclusive lower bound, YYYY-MM-DD"
// @Param        end_date   query  string false "Inclusive upper bound, YYYY-MM-DD"
// @Success      200  {array}   model.LedgerRecord
// @Failure      400  {object}  common.AppError "Invalid ledger ID or malformed date bound"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Caller has no membership on the ledger"
// @Failure      404  {object}  common.AppError "Caller's account no longer exists"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/ledgers/{ledgerId}/records [get]
func (h *LedgerHandler) GetRecords(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok || username == "" {
		return common.NewAppError(http.StatusUnauthorized, "Invalid username in token", nil)
	}

	ledgerID, err := strconv.Atoi(r.PathValue("ledgerId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid ledger ID in URL path", err)
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	records, err := h.service.GetRecords(r.Context(), ledgerID, startDate, endDate, username)
	if err != nil {
		// Map business errors to HTTP status codes. A denied request must
		// never be disguised as an empty result.
		switch err {
		case service.ErrUserNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrAccessDenied:
			return common.NewAppError(http.StatusForbidden, err.Error(), err)
		case service.ErrInvalidDateFormat:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve records", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(records)
	return nil
}

// CreateRecord godoc
// @Summary      Append a record to a ledger
// @Description  Creates a dated record with optional detail line items. The caller must hold a membership on the ledger.
// @Tags         ledgers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ledgerId path int true "The ID of the ledger"
// @Param        record body model.CreateRecordRequest true "Record payload"
// @Success      201  {object}  model.LedgerRecord
// @Failure      400  {object}  common.AppError "Malformed payload, date, or amount"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Caller has no membership on the ledger"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/ledgers/{ledgerId}/records [post]
func (h *LedgerHandler) CreateRecord(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok || username == "" {
		return common.NewAppError(http.StatusUnauthorized, "Invalid username in token", nil)
	}

	ledgerID, err := strconv.Atoi(r.PathValue("ledgerId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid ledger ID in URL path", err)
	}

	var req model.CreateRecordRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	record, err := h.service.CreateRecord(r.Context(), ledgerID, username, req)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrAccessDenied:
			return common.NewAppError(http.StatusForbidden, err.Error(), err)
		case service.ErrInvalidDateFormat, service.ErrInvalidAmount:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create record", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
	return nil
}

// CreateLedger godoc
// @Summary      Create a new ledger
// @Tags         ledgers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ledger body model.CreateLedgerRequest true "Ledger details"
// @Success      201  {object}  model.Ledger
// @Failure      400  {object}  common.AppError "Malformed request body"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/ledgers [post]
func (h *LedgerHandler) CreateLedger(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateLedgerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	ledger, err := h.service.CreateLedger(req.Name)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create ledger", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ledger)
	return nil
}

// ListLedgers godoc
// @Summary      List the caller's ledgers
// @Description  Returns every ledger the caller holds a membership on.
// @Tags         ledgers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Ledger
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/ledgers [get]
func (h *LedgerHandler) ListLedgers(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	ledgers, err := h.service.ListLedgersForUser(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve ledgers", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ledgers)
	return nil
}

// AddMember godoc
// @Summary      Grant a user membership on a ledger
// @Tags         ledgers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ledgerId path int true "The ID of the ledger"
// @Param        member body model.AddMemberRequest true "Member details"
// @Success      201  {object}  model.LedgerMember
// @Failure      400  {object}  common.AppError "Malformed request body or ledger ID"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      404  {object}  common.AppError "Ledger or user not found"
// @Failure      409  {object}  common.AppError "User already holds a membership on the ledger"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/ledgers/{ledgerId}/members [post]
func (h *LedgerHandler) AddMember(w http.ResponseWriter, r *http.Request) *common.AppError {
	ledgerID, err := strconv.Atoi(r.PathValue("ledgerId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid ledger ID in URL path", err)
	}

	var req model.AddMemberRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	member, err := h.service.AddMember(ledgerID, req.UserID, req.MemberRole)
	if err != nil {
		switch err {
		case service.ErrLedgerNotFound, service.ErrUserNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrAlreadyMember:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not add member", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(member)
	return nil
}

// RemoveMember godoc
// @Summary      Revoke a user's membership on a ledger
// @Tags         ledgers
// @Security     BearerAuth
// @Param        ledgerId path int true "The ID of the ledger"
// @Param        userId   path int true "The ID of the user"
// @Success      204  "Membership removed"
// @Failure      400  {object}  common.AppError "Invalid ledger or user ID"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/ledgers/{ledgerId}/members/{userId} [delete]
func (h *LedgerHandler) RemoveMember(w http.ResponseWriter, r *http.Request) *common.AppError {
	ledgerID, err := strconv.Atoi(r.PathValue("ledgerId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid ledger ID in URL path", err)
	}
	userID, err := strconv.Atoi(r.PathValue("userId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID in URL path", err)
	}

	if err := h.service.RemoveMember(ledgerID, userID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not remove member", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
