package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
	"strconv"
)

// EmployeeHandler holds dependencies for employee directory handlers.
type EmployeeHandler struct {
	service *service.EmployeeService
}

func NewEmployeeHandler(s *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

// ListEmployees godoc
// @Summary      List employees
// @Description  Lists the employee directory, optionally filtered by status and/or position.
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        status   query string false "Filter by status (active, left)"
// @Param        position query string false "Filter by position"
// @Success      200  {array}   model.Employee
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/employees [get]
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) *common.AppError {
	status := r.URL.Query().Get("status")
	position := r.URL.Query().Get("position")

	employees, err := h.service.ListEmployees(status, position)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve employees", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(employees)
	return nil
}

// CreateEmployee godoc
// @Summary      Add an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        employee body model.CreateEmployeeRequest true "Employee details"
// @Success      201  {object}  model.Employee
// @Failure      400  {object}  common.AppError "Malformed request body or hire date"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/employees [post]
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateEmployeeRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	employee, err := h.service.CreateEmployee(req)
	if err != nil {
		if err == service.ErrInvalidDateFormat {
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create employee", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
	return nil
}

// UpdateEmployee godoc
// @Summary      Edit an employee
// @Description  Updates an employee's name, position, and status. A position change is synced to the linked account's role.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId path int true "The ID of the employee"
// @Param        employee body model.UpdateEmployeeRequest true "Updated fields"
// @Success      200  {object}  model.Employee
// @Failure      400  {object}  common.AppError "Malformed request body or employee ID"
// @Failure      403  {object}  common.AppError "Caller is not an admin"
// @Failure      404  {object}  common.AppError "Employee not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/admin/employees/{employeeId} [put]
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) *common.AppError {
	employeeID, err := strconv.Atoi(r.PathValue("employeeId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid employee ID in URL path", err)
	}

	var req model.UpdateEmployeeRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	employee, err := h.service.UpdateEmployee(employeeID, req)
	if err != nil {
		if err == service.ErrEmployeeNotFound {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update employee", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(employee)
	return nil
}
