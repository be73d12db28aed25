package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/service"
)

type ShoppingListHandler struct {
	lists  *service.ShoppingListService
	logger *slog.Logger
}

func NewShoppingListHandler(ls *service.ShoppingListService, logger *slog.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{lists: ls, logger: logger}
}

func (h *ShoppingListHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	var req service.GenerateListInput
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	list, err := h.lists.Generate(r.Context(), ac, strings.TrimSpace(req.Name), req.RecipeIDs)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (h *ShoppingListHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	lists, err := h.lists.List(r.Context(), ac)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ShoppingListHandler) Get(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	list, err := h.lists.Get(r.Context(), ac, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ShoppingListHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, h.logger, r, apperr.Validation("invalid item index"))
		return
	}

	list, err := h.lists.ToggleItem(r.Context(), ac, r.PathValue("id"), index)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ShoppingListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if err := h.lists.Delete(r.Context(), ac, r.PathValue("id")); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
