package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/dishly/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(as *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: as, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	u, err := h.auth.Me(r.Context(), ac)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
