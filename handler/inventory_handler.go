package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
)

// InventoryHandler holds dependencies for stock movement handlers.
type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(s *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// AdjustStock godoc
// @Summary      Apply a manual stock movement
// @Description  Moves a material's stock level by a signed delta and writes a movement log. A movement that would drive the level negative is rejected.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        movement body model.AdjustStockRequest true "Movement details"
// @Success      200  {object}  service.StockMovement
// @Failure      400  {object}  common.AppError "Malformed delta"
// @Failure      404  {object}  common.AppError "Material not found"
// @Failure      409  {object}  common.AppError "Movement would drive the stock level negative"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) *common.AppError {
	operatorID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	var req model.AdjustStockRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	movement, err := h.service.AdjustStock(r.Context(), req, operatorID)
	if err != nil {
		switch err {
		case service.ErrMaterialNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrInvalidAmount:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case service.ErrInsufficientStock:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not adjust stock", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(movement)
	return nil
}

// StockAlerts godoc
// @Summary      List low-stock alerts
// @Description  Lists materials at or below their safety stock. Fully depleted materials are CRITICAL, the rest WARNING.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.StockAlert
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) StockAlerts(w http.ResponseWriter, r *http.Request) *common.AppError {
	alerts, err := h.service.LowStockAlerts()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not check stock alerts", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(alerts)
	return nil
}

// InventoryReport godoc
// @Summary      Inventory summary report
// @Description  Totals the inventory valuation at standard unit prices and counts low-stock and out-of-stock materials.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.InventoryReport
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/inventory/report [get]
func (h *InventoryHandler) InventoryReport(w http.ResponseWriter, r *http.Request) *common.AppError {
	report, err := h.service.Report()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not build inventory report", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(report)
	return nil
}
