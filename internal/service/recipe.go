package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/store"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type IngredientInput struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"required,max=50"`
	Order    int     `json:"order" validate:"gte=0"`
}

type InstructionInput struct {
	StepNumber  int    `json:"step_number" validate:"gte=1"`
	Description string `json:"description" validate:"required"`
}

// RecipeInput is the full set of editable recipe fields.
type RecipeInput struct {
	Title           string             `json:"title" validate:"required,max=200"`
	Description     string             `json:"description" validate:"max=5000"`
	PrepTimeMinutes int                `json:"prep_time_minutes" validate:"gte=0"`
	CookTimeMinutes int                `json:"cook_time_minutes" validate:"gte=0"`
	Servings        int                `json:"servings" validate:"gte=1"`
	Difficulty      string             `json:"difficulty" validate:"required,difficulty"`
	IsPublic        bool               `json:"is_public"`
	ImageURLs       []string           `json:"image_urls" validate:"dive,url"`
	Ingredients     []IngredientInput  `json:"ingredients" validate:"dive"`
	Instructions    []InstructionInput `json:"instructions" validate:"dive"`
	Categories      []string           `json:"categories" validate:"dive,required"`
	Tags            []string           `json:"tags" validate:"dive,required"`
}

// RecipeUpdate changes only the fields that are set.
type RecipeUpdate struct {
	Title           *string             `json:"title" validate:"omitempty,max=200"`
	Description     *string             `json:"description" validate:"omitempty,max=5000"`
	PrepTimeMinutes *int                `json:"prep_time_minutes" validate:"omitempty,gte=0"`
	CookTimeMinutes *int                `json:"cook_time_minutes" validate:"omitempty,gte=0"`
	Servings        *int                `json:"servings" validate:"omitempty,gte=1"`
	Difficulty      *string             `json:"difficulty" validate:"omitempty,difficulty"`
	ImageURLs       *[]string           `json:"image_urls" validate:"omitempty,dive,url"`
	Ingredients     *[]IngredientInput  `json:"ingredients" validate:"omitempty,dive"`
	Instructions    *[]InstructionInput `json:"instructions" validate:"omitempty,dive"`
	Categories      *[]string           `json:"categories" validate:"omitempty,dive,required"`
	Tags            *[]string           `json:"tags" validate:"omitempty,dive,required"`
}

type RecipeService struct {
	recipes *store.RecipeStore
	likes   *store.LikeStore
	logger  *slog.Logger
}

func NewRecipeService(recipes *store.RecipeStore, likes *store.LikeStore, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		likes:   likes,
		logger:  logger.With("component", "recipes"),
	}
}

func (s *RecipeService) Create(ctx context.Context, caller auth.AuthContext, in RecipeInput) (*model.RecipeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	r, err := s.recipes.Create(&model.Recipe{
		UserID:          caller.UserID,
		Username:        caller.Username,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		PrepTimeMinutes: in.PrepTimeMinutes,
		CookTimeMinutes: in.CookTimeMinutes,
		Servings:        in.Servings,
		Difficulty:      normalizeDifficulty(in.Difficulty),
		IsPublic:        in.IsPublic,
		ImageURLs:       in.ImageURLs,
		Ingredients:     toIngredients(in.Ingredients),
		Instructions:    toInstructions(in.Instructions),
		Categories:      in.Categories,
		Tags:            in.Tags,
	})
	if err != nil {
		return nil, apperr.Internal("failed to create recipe", err)
	}

	s.logger.Info("recipe created", "recipe_id", r.ID, "user_id", caller.UserID, "public", r.IsPublic)
	return recipeView(r, caller.UserID, false), nil
}

// Update applies the set fields of in to a recipe owned by caller.
func (s *RecipeService) Update(ctx context.Context, caller auth.AuthContext, id string, in RecipeUpdate) (*model.RecipeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.ownedRecipe(id, caller.UserID, "update this recipe")
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.ValidationWithDetails("title: is required", map[string]string{"title": "is required"})
		}
		r.Title = title
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.PrepTimeMinutes != nil {
		r.PrepTimeMinutes = *in.PrepTimeMinutes
	}
	if in.CookTimeMinutes != nil {
		r.CookTimeMinutes = *in.CookTimeMinutes
	}
	if in.Servings != nil {
		r.Servings = *in.Servings
	}
	if in.Difficulty != nil {
		r.Difficulty = normalizeDifficulty(*in.Difficulty)
	}
	if in.ImageURLs != nil {
		r.ImageURLs = *in.ImageURLs
	}
	if in.Ingredients != nil {
		r.Ingredients = toIngredients(*in.Ingredients)
	}
	if in.Instructions != nil {
		r.Instructions = toInstructions(*in.Instructions)
	}
	if in.Categories != nil {
		r.Categories = *in.Categories
	}
	if in.Tags != nil {
		r.Tags = *in.Tags
	}

	updated, err := s.recipes.Update(r)
	if err != nil {
		return nil, apperr.Internal("failed to update recipe", err)
	}
	if updated == nil {
		return nil, apperr.NotFoundf("recipe not found: %s", id)
	}

	s.logger.Info("recipe updated", "recipe_id", id, "user_id", caller.UserID)
	return s.view(updated, caller.UserID)
}

// Delete removes a recipe owned by caller along with its ratings, likes and
// collection entries.
func (s *RecipeService) Delete(ctx context.Context, caller auth.AuthContext, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.ownedRecipe(id, caller.UserID, "delete this recipe"); err != nil {
		return err
	}
	if err := s.recipes.Delete(id); err != nil {
		return apperr.Internal("failed to delete recipe", err)
	}
	s.logger.Info("recipe deleted", "recipe_id", id, "user_id", caller.UserID)
	return nil
}

// ToggleVisibility flips a recipe between public and private.
func (s *RecipeService) ToggleVisibility(ctx context.Context, caller auth.AuthContext, id string) (*model.RecipeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.ownedRecipe(id, caller.UserID, "change visibility of this recipe")
	if err != nil {
		return nil, err
	}

	updated, err := s.recipes.SetVisibility(id, !r.IsPublic)
	if err != nil {
		return nil, apperr.Internal("failed to update visibility", err)
	}
	if updated == nil {
		return nil, apperr.NotFoundf("recipe not found: %s", id)
	}

	s.logger.Info("recipe visibility changed", "recipe_id", id, "public", updated.IsPublic)
	return s.view(updated, caller.UserID)
}

// Copy creates a private copy of a public recipe owned by caller. Ratings and
// likes are not carried over.
func (s *RecipeService) Copy(ctx context.Context, caller auth.AuthContext, id string) (*model.RecipeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := s.getRecipe(id)
	if err != nil {
		return nil, err
	}
	if !src.IsPublic {
		return nil, apperr.Forbidden("you can only copy public recipes")
	}

	cp := *src
	cp.ID = ""
	cp.UserID = caller.UserID
	cp.Username = caller.Username
	cp.IsPublic = false

	r, err := s.recipes.Create(&cp)
	if err != nil {
		return nil, apperr.Internal("failed to copy recipe", err)
	}

	s.logger.Info("recipe copied", "source_id", id, "recipe_id", r.ID, "user_id", caller.UserID)
	return recipeView(r, caller.UserID, false), nil
}

// ListOwn returns caller's recipes matching f.
func (s *RecipeService) ListOwn(ctx context.Context, caller auth.AuthContext, f model.RecipeFilter) ([]model.RecipeSummary, error) {
	recipes, err := s.recipes.ListByOwner(caller.UserID, f)
	if err != nil {
		return nil, apperr.Internal("failed to list recipes", err)
	}
	return summarize(s.likes, recipes, caller.UserID)
}

// ListPublic returns one zero-based page of public recipes matching f.
func (s *RecipeService) ListPublic(ctx context.Context, f model.RecipeFilter, page, size int, viewerID string) (*model.Page[model.RecipeSummary], error) {
	if page < 0 {
		return nil, apperr.Validation("page must not be negative")
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)

	recipes, total, err := s.recipes.ListPublic(f, page, size)
	if err != nil {
		return nil, apperr.Internal("failed to list recipes", err)
	}
	items, err := summarize(s.likes, recipes, viewerID)
	if err != nil {
		return nil, err
	}

	return &model.Page[model.RecipeSummary]{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    (total + size - 1) / size,
	}, nil
}

func (s *RecipeService) getRecipe(id string) (*model.Recipe, error) {
	r, err := s.recipes.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to load recipe", err)
	}
	if r == nil {
		return nil, apperr.NotFoundf("recipe not found: %s", id)
	}
	return r, nil
}

func (s *RecipeService) ownedRecipe(id, callerID, action string) (*model.Recipe, error) {
	r, err := s.getRecipe(id)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertOwner(r.UserID, callerID, action); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RecipeService) view(r *model.Recipe, viewerID string) (*model.RecipeView, error) {
	liked, err := s.likes.Exists(r.ID, viewerID)
	if err != nil {
		return nil, apperr.Internal("failed to load like state", err)
	}
	return recipeView(r, viewerID, liked), nil
}

func normalizeDifficulty(d string) model.Difficulty {
	return model.Difficulty(strings.ToUpper(strings.TrimSpace(d)))
}

// toIngredients orders ingredients by their explicit order, keeping input
// order for ties.
func toIngredients(in []IngredientInput) []model.Ingredient {
	out := make([]model.Ingredient, len(in))
	for i, ing := range in {
		out[i] = model.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit, Order: ing.Order}
	}
	slices.SortStableFunc(out, func(a, b model.Ingredient) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

func toInstructions(in []InstructionInput) []model.Instruction {
	out := make([]model.Instruction, len(in))
	for i, step := range in {
		out[i] = model.Instruction{StepNumber: step.StepNumber, Description: step.Description}
	}
	slices.SortStableFunc(out, func(a, b model.Instruction) int {
		return cmp.Compare(a.StepNumber, b.StepNumber)
	})
	return out
}
