package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tasktrack/tasktrack-go/internal/middleware"
	"github.com/tasktrack/tasktrack-go/internal/model"
	"github.com/tasktrack/tasktrack-go/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service *service.TaskService
	logger  *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{service: svc, logger: logger}
}

// HandleList handles GET /api/v1/tasks requests.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tasks, err := h.service.List(r.Context(), caller)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list tasks failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "Tasks retrieved successfully", model.TasksToResponse(tasks))
}

// HandleGet handles GET /api/v1/tasks/{id} requests.
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := taskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}

	task, err := h.service.Get(r.Context(), caller, id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found.")
			return
		}
		h.logger.ErrorContext(r.Context(), "get task failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "Task retrieved successfully", task.ToResponse())
}

// HandleCreate handles POST /api/v1/tasks requests.
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		var fields service.FieldErrors
		if errors.As(err, &fields) {
			writeValidationError(w, "Task creation failed", fields)
			return
		}
		h.logger.ErrorContext(r.Context(), "create task failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, http.StatusCreated, "Task created successfully", task.ToResponse())
}

// HandleUpdate handles PUT and PATCH /api/v1/tasks/{id} requests.
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := taskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.service.Update(r.Context(), caller, id, req)
	if err != nil {
		h.writeTaskError(w, r, err, "update task failed")
		return
	}

	writeSuccess(w, http.StatusOK, "Task updated successfully", task.ToResponse())
}

// HandleDelete handles DELETE /api/v1/tasks/{id} requests. Deletion returns
// 200 with a null data field rather than 204, keeping the envelope uniform.
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := taskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found.")
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		h.writeTaskError(w, r, err, "delete task failed")
		return
	}

	writeSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

// writeTaskError maps task service errors for the mutating routes.
func (h *TaskHandler) writeTaskError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	var fields service.FieldErrors
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found.")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &fields):
		writeValidationError(w, "Task update failed", fields)
	default:
		h.logger.ErrorContext(r.Context(), logMsg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func taskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
