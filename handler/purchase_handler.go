package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
	"strconv"
)

// PurchaseHandler holds dependencies for purchasing handlers.
type PurchaseHandler struct {
	service *service.PurchaseService
}

func NewPurchaseHandler(s *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

// ListPurchases godoc
// @Summary      List purchases
// @Description  Lists purchases newest first, optionally filtered by status and/or task, enriched with material and supplier names.
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        status  query string false "Filter by status (pending, ordered, received, cancelled)"
// @Param        task_id query int    false "Filter by printing task"
// @Success      200  {array}   model.Purchase
// @Failure      400  {object}  common.AppError "Invalid task filter"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/purchases [get]
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) *common.AppError {
	taskID := 0
	if raw := r.URL.Query().Get("task_id"); raw != "" {
		var err error
		taskID, err = strconv.Atoi(raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid task_id filter", err)
		}
	}

	purchases, err := h.service.ListPurchases(r.URL.Query().Get("status"), taskID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve purchases", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(purchases)
	return nil
}

// CreatePurchase godoc
// @Summary      Raise a purchase for a task
// @Description  Creates a purchase against a material-supplier link, costed at the link's quoted price.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        purchase body model.CreatePurchaseRequest true "Purchase details"
// @Success      201  {object}  model.Purchase
// @Failure      400  {object}  common.AppError "Malformed payload or non-positive quantity"
// @Failure      404  {object}  common.AppError "Task or link not found"
// @Failure      409  {object}  common.AppError "The printing task has been cancelled"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/purchases [post]
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreatePurchaseRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	purchase, err := h.service.CreatePurchase(r.Context(), req)
	if err != nil {
		switch err {
		case service.ErrTaskNotFound, service.ErrLinkNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrInvalidAmount:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case service.ErrTaskCancelled:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create purchase", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(purchase)
	return nil
}

// UpdatePurchaseStatus godoc
// @Summary      Change a purchase's status
// @Description  Applies a plain status transition. Receiving moves stock and goes through the receive operation instead.
// @Tags         purchases
// @Accept       json
// @Security     BearerAuth
// @Param        purchaseId path int true "The ID of the purchase"
// @Param        payload body model.UpdatePurchaseStatusRequest true "New status"
// @Success      204  "Status updated"
// @Failure      400  {object}  common.AppError "Malformed payload or purchase ID"
// @Failure      404  {object}  common.AppError "Purchase not found"
// @Failure      409  {object}  common.AppError "Transition not allowed from the current status"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/purchases/{purchaseId}/status [put]
func (h *PurchaseHandler) UpdatePurchaseStatus(w http.ResponseWriter, r *http.Request) *common.AppError {
	purchaseID, err := strconv.Atoi(r.PathValue("purchaseId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid purchase ID in URL path", err)
	}

	var req model.UpdatePurchaseStatusRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.service.UpdateStatus(purchaseID, req.Status); err != nil {
		switch err {
		case service.ErrPurchaseNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrInvalidStatusChange:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update purchase status", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ReceivePurchase godoc
// @Summary      Receive a purchase into stock
// @Description  Books the purchased quantity into stock with a movement log, then marks the purchase received.
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        purchaseId path int true "The ID of the purchase"
// @Success      200  {object}  service.StockMovement
// @Failure      400  {object}  common.AppError "Invalid purchase ID"
// @Failure      404  {object}  common.AppError "Purchase or its supplier link not found"
// @Failure      409  {object}  common.AppError "Purchase already received or cancelled"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/purchases/{purchaseId}/receive [post]
func (h *PurchaseHandler) ReceivePurchase(w http.ResponseWriter, r *http.Request) *common.AppError {
	operatorID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	purchaseID, err := strconv.Atoi(r.PathValue("purchaseId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid purchase ID in URL path", err)
	}

	movement, err := h.service.Receive(r.Context(), purchaseID, operatorID)
	if err != nil {
		switch err {
		case service.ErrPurchaseNotFound, service.ErrLinkNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrInvalidStatusChange:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not receive purchase", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(movement)
	return nil
}
