package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	authhttp "github.com/ardanovsky/todo-service/internal/auth/http"
	commonhttp "github.com/ardanovsky/todo-service/internal/common/http"
	"github.com/ardanovsky/todo-service/internal/common/logger"
	"github.com/ardanovsky/todo-service/internal/todo/domain"
	"github.com/ardanovsky/todo-service/internal/todo/service"
)

type createRequest struct {
	Text string `json:"text"`
}

type patchRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type todoResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
}

type listResponse struct {
	Todos []todoResponse `json:"todos"`
}

type itemResponse struct {
	Todo todoResponse `json:"todo"`
}

func toResponse(t domain.Todo) todoResponse {
	return todoResponse{
		ID:          string(t.ID),
		OwnerID:     t.OwnerID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
	}
}

type Handler struct {
	todos   *service.TodoService
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(todos *service.TodoService, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{todos: todos, log: log, timeout: timeout}
}

// Register mounts /todos behind the guard. Every handler reads the owner from
// the request principal, never from the payload.
func (h *Handler) Register(r *mux.Router, guard func(http.Handler) http.Handler) {
	withTimeout := commonhttp.WithTimeout(h.timeout)

	sub := r.PathPrefix("/todos").Subrouter()
	sub.Use(guard)
	sub.HandleFunc("", withTimeout(h.list)).Methods(http.MethodGet)
	sub.HandleFunc("", withTimeout(h.create)).Methods(http.MethodPost)
	sub.HandleFunc("/{id}", withTimeout(h.get)).Methods(http.MethodGet)
	sub.HandleFunc("/{id}", withTimeout(h.patch)).Methods(http.MethodPatch)
	sub.HandleFunc("/{id}", withTimeout(h.delete)).Methods(http.MethodDelete)
}

func principal(w http.ResponseWriter, r *http.Request) (authhttp.Principal, bool) {
	p, ok := authhttp.PrincipalFromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "authentication required")
	}
	return p, ok
}

// pathID validates the path id before any store lookup. A malformed id is
// answered 404, same as an absent one.
func pathID(w http.ResponseWriter, r *http.Request) (domain.ID, bool) {
	raw := mux.Vars(r)["id"]
	if _, err := uuid.Parse(raw); err != nil {
		commonhttp.WriteError(w, http.StatusNotFound, "todo not found")
		return "", false
	}
	return domain.ID(raw), true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	todos, err := h.todos.ListByOwner(r.Context(), p.UserID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := listResponse{Todos: make([]todoResponse, 0, len(todos))}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, toResponse(t))
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("todo create failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	todo, err := h.todos.Create(r.Context(), p.UserID, req.Text)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(todo))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.FindByIDForOwner(r.Context(), p.UserID, id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, itemResponse{Todo: toResponse(todo)})
}

func (h *Handler) patch(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req patchRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("todo patch failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	todo, err := h.todos.Update(r.Context(), p.UserID, id, domain.Patch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, itemResponse{Todo: toResponse(todo)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Delete(r.Context(), p.UserID, id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, itemResponse{Todo: toResponse(todo)})
}
