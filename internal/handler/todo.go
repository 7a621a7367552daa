package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskbox/taskbox-go/internal/middleware"
	"github.com/taskbox/taskbox-go/internal/model"
	"github.com/taskbox/taskbox-go/internal/service"
)

// TodoHandler handles HTTP requests for todo operations. All routes are
// behind the auth middleware; the owner is always taken from the request
// context, never from the request body.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleCreate handles POST /todos requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	todo, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrTextRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.Warn("create todo failed", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse("unable to create todo"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todo": todo.ToResponse()})
}

// HandleList handles GET /todos requests, returning only the caller's todos.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	todos, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		slog.Warn("list todos failed", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse("unable to list todos"))
		return
	}

	responses := make([]model.TodoResponse, len(todos))
	for i := range todos {
		responses[i] = todos[i].ToResponse()
	}

	writeJSON(w, http.StatusOK, map[string]any{"todos": responses})
}

// HandleGet handles GET /todos/{id} requests.
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	todo, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeTodoError(w, "get todo failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todo": todo.ToResponse()})
}

// HandleUpdate handles PATCH /todos/{id} requests.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	todo, err := h.service.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, service.ErrTextRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeTodoError(w, "update todo failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todo": todo.ToResponse()})
}

// HandleDelete handles DELETE /todos/{id} requests, returning the removed
// record.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	todo, err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeTodoError(w, "delete todo failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todo": todo.ToResponse()})
}

// writeTodoError maps service errors for single-todo routes: not-found,
// not-owned and malformed ids are all 404; anything else degrades to 400.
func writeTodoError(w http.ResponseWriter, logMsg string, err error) {
	if errors.Is(err, service.ErrTodoNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		return
	}
	slog.Warn(logMsg, "error", err)
	writeJSON(w, http.StatusBadRequest, errorResponse("unable to process request"))
}
