package handler

import (
	"encoding/json"
	"go-publisher-api/common"
	"go-publisher-api/model"
	"go-publisher-api/service"
	"net/http"
	"strconv"
)

// PrintingHandler holds dependencies for printing task handlers.
type PrintingHandler struct {
	service *service.PrintingService
}

func NewPrintingHandler(s *service.PrintingService) *PrintingHandler {
	return &PrintingHandler{service: s}
}

// ListTasks godoc
// @Summary      List printing tasks
// @Tags         printing
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status (pending, in_progress, completed, cancelled)"
// @Success      200  {array}   model.PrintingTask
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/tasks [get]
func (h *PrintingHandler) ListTasks(w http.ResponseWriter, r *http.Request) *common.AppError {
	tasks, err := h.service.ListTasks(r.URL.Query().Get("status"))
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve tasks", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tasks)
	return nil
}

// SubmitTask godoc
// @Summary      Submit a print run
// @Description  Creates a printing task and, in the same transaction, a purchase order per required material against the best available supplier.
// @Tags         printing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        task body model.CreatePrintingTaskRequest true "Task details"
// @Success      201  {object}  model.PrintingTask
// @Failure      400  {object}  common.AppError "Malformed payload, past due date"
// @Failure      404  {object}  common.AppError "Employee or book not found"
// @Failure      409  {object}  common.AppError "A required material has no active supplier"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/tasks [post]
func (h *PrintingHandler) SubmitTask(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreatePrintingTaskRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	task, err := h.service.SubmitTask(r.Context(), req)
	if err != nil {
		switch err {
		case service.ErrEmployeeInactive, service.ErrBookNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrInvalidDateFormat, service.ErrPastDueDate:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case service.ErrNoSupplier:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not submit task", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
	return nil
}

// GetTaskDetail godoc
// @Summary      Get a task with its associated data
// @Description  Returns a task together with its employee, book and purchase orders.
// @Tags         printing
// @Produce      json
// @Security     BearerAuth
// @Param        taskId path int true "The ID of the task"
// @Success      200  {object}  model.TaskDetail
// @Failure      400  {object}  common.AppError "Invalid task ID"
// @Failure      404  {object}  common.AppError "Task not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/tasks/{taskId} [get]
func (h *PrintingHandler) GetTaskDetail(w http.ResponseWriter, r *http.Request) *common.AppError {
	taskID, err := strconv.Atoi(r.PathValue("taskId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid task ID in URL path", err)
	}

	detail, err := h.service.GetTaskDetail(taskID)
	if err != nil {
		if err == service.ErrTaskNotFound {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve task", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(detail)
	return nil
}

// GetTaskRequirements godoc
// @Summary      Get a task's material requirements
// @Description  Compares the task's consumption plan against current stock levels, including per-material shortages.
// @Tags         printing
// @Produce      json
// @Security     BearerAuth
// @Param        taskId path int true "The ID of the task"
// @Success      200  {array}   model.TaskRequirement
// @Failure      400  {object}  common.AppError "Invalid task ID"
// @Failure      404  {object}  common.AppError "Task not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/tasks/{taskId}/requirements [get]
func (h *PrintingHandler) GetTaskRequirements(w http.ResponseWriter, r *http.Request) *common.AppError {
	taskID, err := strconv.Atoi(r.PathValue("taskId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid task ID in URL path", err)
	}

	items, err := h.service.TaskRequirements(taskID)
	if err != nil {
		switch err {
		case service.ErrTaskNotFound, service.ErrMaterialNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not compute requirements", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(items)
	return nil
}

// UpdateTaskStatus godoc
// @Summary      Change a task's status
// @Description  Applies a plain status transition. Completion consumes stock and goes through the complete operation instead.
// @Tags         printing
// @Accept       json
// @Security     BearerAuth
// @Param        taskId path int true "The ID of the task"
// @Param        payload body model.UpdateTaskStatusRequest true "New status"
// @Success      204  "Status updated"
// @Failure      400  {object}  common.AppError "Malformed payload or task ID"
// @Failure      404  {object}  common.AppError "Task not found"
// @Failure      409  {object}  common.AppError "Transition not allowed from the current status"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/tasks/{taskId}/status [put]
func (h *PrintingHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) *common.AppError {
	taskID, err := strconv.Atoi(r.PathValue("taskId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid task ID in URL path", err)
	}

	var req model.UpdateTaskStatusRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.service.UpdateTaskStatus(taskID, req.Status); err != nil {
		switch err {
		case service.ErrTaskNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrInvalidStatusChange:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update task status", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// CompleteTask godoc
// @Summary      Complete a print run
// @Description  Consumes the task's materials from stock and marks it completed. When stock is short, the response lists the shortages.
// @Tags         printing
// @Produce      json
// @Security     BearerAuth
// @Param        taskId path int true "The ID of the task"
// @Success      204  "Task completed, materials consumed"
// @Failure      400  {object}  common.AppError "Invalid task ID"
// @Failure      404  {object}  common.AppError "Task not found"
// @Failure      409  {object}  common.AppError "Task already finished or stock is short"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /api/tasks/{taskId}/complete [post]
func (h *PrintingHandler) CompleteTask(w http.ResponseWriter, r *http.Request) *common.AppError {
	operatorID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	taskID, err := strconv.Atoi(r.PathValue("taskId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid task ID in URL path", err)
	}

	shortages, err := h.service.CompleteTask(r.Context(), taskID, operatorID)
	if err != nil {
		switch err {
		case service.ErrTaskNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case service.ErrInsufficientStock:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message":   err.Error(),
				"shortages": shortages,
			})
			return nil
		case service.ErrInvalidStatusChange:
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not complete task", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
