package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ardanovsky/todo-service/internal/auth/service"
	commonhttp "github.com/ardanovsky/todo-service/internal/common/http"
	"github.com/ardanovsky/todo-service/internal/common/logger"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	auth    *service.AuthService
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *service.AuthService, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{auth: auth, log: log, timeout: timeout}
}

// Register mounts the user routes. /users/me and /users/me/token sit behind
// the guard; registration and login are public.
func (h *Handler) Register(r *mux.Router) {
	withTimeout := commonhttp.WithTimeout(h.timeout)
	guard := Guard(h.auth, h.log)

	r.HandleFunc("/users", withTimeout(h.register)).Methods(http.MethodPost)
	r.HandleFunc("/users/login", withTimeout(h.login)).Methods(http.MethodPost)

	me := r.PathPrefix("/users/me").Subrouter()
	me.Use(guard)
	me.HandleFunc("", withTimeout(h.me)).Methods(http.MethodGet)
	me.HandleFunc("/token", withTimeout(h.logout)).Methods(http.MethodDelete)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.Header().Set(AuthHeader, token)
	commonhttp.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.Header().Set(AuthHeader, token)
	commonhttp.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.auth.GetUser(r.Context(), principal.UserID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.auth.Revoke(r.Context(), principal.UserID, principal.Token); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusOK)
}
