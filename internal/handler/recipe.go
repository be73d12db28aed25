package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/service"
)

type RecipeHandler struct {
	recipes       *service.RecipeService
	aggregates    *service.AggregationService
	trendingLimit int
	logger        *slog.Logger
}

func NewRecipeHandler(rs *service.RecipeService, as *service.AggregationService, trendingLimit int, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes:       rs,
		aggregates:    as,
		trendingLimit: trendingLimit,
		logger:        logger,
	}
}

type rateRequest struct {
	Rating *float64 `json:"rating" validate:"required,gte=0,lte=5"`
	Review string   `json:"review" validate:"max=2000"`
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	var req service.RecipeInput
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	v, err := h.recipes.Create(r.Context(), ac, req)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// ListOwn accepts one of search, category or tag.
func (h *RecipeHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	q := r.URL.Query()
	f := model.RecipeFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		Tag:      strings.TrimSpace(q.Get("tag")),
	}

	items, err := h.recipes.ListOwn(r.Context(), ac, f)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get is served with optional authentication.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.aggregates.View(r.Context(), r.PathValue("id"), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	var req service.RecipeUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	v, err := h.recipes.Update(r.Context(), ac, r.PathValue("id"), req)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if err := h.recipes.Delete(r.Context(), ac, r.PathValue("id")); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	v, err := h.recipes.ToggleVisibility(r.Context(), ac, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *RecipeHandler) Copy(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	v, err := h.recipes.Copy(r.Context(), ac, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *RecipeHandler) Rate(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	var req rateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	v, err := h.aggregates.Rate(r.Context(), ac, r.PathValue("id"), *req.Rating, strings.TrimSpace(req.Review))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *RecipeHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.aggregates.Ratings(r.Context(), r.PathValue("id"), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if ratings == nil {
		ratings = []model.Rating{}
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *RecipeHandler) Like(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	v, err := h.aggregates.Like(r.Context(), ac, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *RecipeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	ac, err := caller(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	v, err := h.aggregates.Unlike(r.Context(), ac, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ListPublic pages through public recipes filtered by title search and
// category.
func (h *RecipeHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.page(w, r, model.RecipeFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
	})
}

// Search matches public recipes on title, description, tags and author.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, model.RecipeFilter{Query: strings.TrimSpace(r.URL.Query().Get("query"))})
}

func (h *RecipeHandler) Trending(w http.ResponseWriter, r *http.Request) {
	items, err := h.aggregates.MostLiked(r.Context(), h.trendingLimit, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *RecipeHandler) page(w http.ResponseWriter, r *http.Request, f model.RecipeFilter) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	size, err := queryInt(r, "size", service.DefaultPageSize)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	p, err := h.recipes.ListPublic(r.Context(), f, page, size, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
