package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/service"
)

type CollectionHandler struct {
	collections *service.CollectionService
	logger      *slog.Logger
}

func NewCollectionHandler(cs *service.CollectionService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{collections: cs, logger: logger}
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	var req service.CollectionInput
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	c, err := h.collections.Create(r.Context(), ac, strings.TrimSpace(req.Name))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	cs, err := h.collections.List(r.Context(), ac)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if cs == nil {
		cs = []model.Collection{}
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *CollectionHandler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	c, err := h.collections.AddRecipe(r.Context(), ac, r.PathValue("id"), r.PathValue("recipe_id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CollectionHandler) RemoveRecipe(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	c, err := h.collections.RemoveRecipe(r.Context(), ac, r.PathValue("id"), r.PathValue("recipe_id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CollectionHandler) Recipes(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	items, err := h.collections.Recipes(r.Context(), ac, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if err := h.collections.Delete(r.Context(), ac, r.PathValue("id")); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
