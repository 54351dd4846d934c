package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
	"strconv"
)

// MaterialHandler holds dependencies for material and supplier catalog
// handlers.
type MaterialHandler struct {
	service *service.MaterialService
}

func NewMaterialHandler(s *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: s}
}

// materialStatus maps catalog business errors to HTTP status codes.
func materialStatus(err error) *common.AppError {
	switch err {
	case service.ErrMaterialNotFound, service.ErrSupplierNotFound:
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case service.ErrInvalidAmount, service.ErrNegativeValue:
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Catalog operation failed", err)
	}
}

// ListMaterials godoc
// @Summary      List materials
// @Description  Lists the material catalog with stock levels, optionally filtered by a name keyword.
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        name query string false "Name keyword filter"
// @Success      200  {array}   model.Material
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/materials [get]
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) *common.AppError {
	materials, err := h.service.ListMaterials(r.URL.Query().Get("name"))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve materials", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(materials)
	return nil
}

// GetMaterialDetail godoc
// @Summary      Get a material with its movement history
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        materialId path int true "The ID of the material"
// @Success      200  {object}  service.MaterialDetail
// @Failure      400  {object}  common.AppError "Invalid material ID"
// @Failure      404  {object}  common.AppError "Material not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/materials/{materialId} [get]
func (h *MaterialHandler) GetMaterialDetail(w http.ResponseWriter, r *http.Request) *common.AppError {
	materialID, err := strconv.Atoi(r.PathValue("materialId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid material ID in URL path", err)
	}

	detail, err := h.service.GetMaterialDetail(materialID)
	if err != nil {
		return materialStatus(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(detail)
	return nil
}

// CreateMaterial godoc
// @Summary      Register a material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        material body model.CreateMaterialRequest true "Material details"
// @Success      201  {object}  model.Material
// @Failure      400  {object}  common.AppError "Malformed request body or price"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/materials [post]
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateMaterialRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	material, err := h.service.CreateMaterial(req)
	if err != nil {
		return materialStatus(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(material)
	return nil
}

// SetSafetyStock godoc
// @Summary      Set a material's safety stock threshold
// @Tags         materials
// @Accept       json
// @Security     BearerAuth
// @Param        materialId path int true "The ID of the material"
// @Param        payload body model.SetSafetyStockRequest true "New threshold"
// @Success      204  "Threshold updated"
// @Failure      400  {object}  common.AppError "Malformed value or negative threshold"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      404  {object}  common.AppError "Material not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/materials/{materialId}/safety-stock [put]
func (h *MaterialHandler) SetSafetyStock(w http.ResponseWriter, r *http.Request) *common.AppError {
	materialID, err := strconv.Atoi(r.PathValue("materialId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid material ID in URL path", err)
	}

	var req model.SetSafetyStockRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.service.SetSafetyStock(materialID, req.SafetyStock); err != nil {
		return materialStatus(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// SetUnitPrice godoc
// @Summary      Set a material's standard unit price
// @Tags         materials
// @Accept       json
// @Security     BearerAuth
// @Param        materialId path int true "The ID of the material"
// @Param        payload body model.SetUnitPriceRequest true "New price"
// @Success      204  "Price updated"
// @Failure      400  {object}  common.AppError "Malformed value or negative price"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      404  {object}  common.AppError "Material not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/materials/{materialId}/price [put]
func (h *MaterialHandler) SetUnitPrice(w http.ResponseWriter, r *http.Request) *common.AppError {
	materialID, err := strconv.Atoi(r.PathValue("materialId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid material ID in URL path", err)
	}

	var req model.SetUnitPriceRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.service.SetUnitPrice(materialID, req.UnitPrice); err != nil {
		return materialStatus(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ListSuppliers godoc
// @Summary      List suppliers
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by cooperation status (active, ended)"
// @Success      200  {array}   model.Supplier
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/suppliers [get]
func (h *MaterialHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) *common.AppError {
	suppliers, err := h.service.ListSuppliers(r.URL.Query().Get("status"))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve suppliers", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(suppliers)
	return nil
}

// CreateSupplier godoc
// @Summary      Register a supplier
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        supplier body model.CreateSupplierRequest true "Supplier details"
// @Success      201  {object}  model.Supplier
// @Failure      400  {object}  common.AppError "Malformed request body"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/suppliers [post]
func (h *MaterialHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateSupplierRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	supplier, err := h.service.CreateSupplier(req)
	if err != nil {
		return materialStatus(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(supplier)
	return nil
}

// ListMaterialSuppliers godoc
// @Summary      List a material's supplier links
// @Description  Lists the supplier quotes of a material, best sourcing choice first.
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        materialId path int true "The ID of the material"
// @Success      200  {array}   model.MaterialSupplier
// @Failure      400  {object}  common.AppError "Invalid material ID"
// @Failure      404  {object}  common.AppError "Material not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/materials/{materialId}/suppliers [get]
func (h *MaterialHandler) ListMaterialSuppliers(w http.ResponseWriter, r *http.Request) *common.AppError {
	materialID, err := strconv.Atoi(r.PathValue("materialId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid material ID in URL path", err)
	}

	links, err := h.service.ListMaterialSuppliers(materialID)
	if err != nil {
		return materialStatus(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(links)
	return nil
}

// LinkSupplier godoc
// @Summary      Link a supplier to a material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        materialId path int true "The ID of the material"
// @Param        link body model.LinkSupplierRequest true "Link details with quoted price"
// @Success      201  {object}  model.MaterialSupplier
// @Failure      400  {object}  common.AppError "Malformed request body or price"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      404  {object}  common.AppError "Material or supplier not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/materials/{materialId}/suppliers [post]
func (h *MaterialHandler) LinkSupplier(w http.ResponseWriter, r *http.Request) *common.AppError {
	materialID, err := strconv.Atoi(r.PathValue("materialId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid material ID in URL path", err)
	}

	var req model.LinkSupplierRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	link, err := h.service.LinkSupplier(materialID, req)
	if err != nil {
		return materialStatus(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(link)
	return nil
}
