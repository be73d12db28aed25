package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/store"
)

type CollectionInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

type CollectionService struct {
	collections *store.CollectionStore
	recipes     *store.RecipeStore
	likes       *store.LikeStore
	logger      *slog.Logger
}

func NewCollectionService(collections *store.CollectionStore, recipes *store.RecipeStore, likes *store.LikeStore, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		collections: collections,
		recipes:     recipes,
		likes:       likes,
		logger:      logger.With("component", "collections"),
	}
}

func (s *CollectionService) Create(ctx context.Context, caller auth.AuthContext, name string) (*model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := s.collections.Create(caller.UserID, name)
	if err != nil {
		return nil, apperr.Internal("failed to create collection", err)
	}
	s.logger.Info("collection created", "collection_id", c.ID, "user_id", caller.UserID, "name", name)
	return c, nil
}

func (s *CollectionService) List(ctx context.Context, caller auth.AuthContext) ([]model.Collection, error) {
	cs, err := s.collections.ListByOwner(caller.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to list collections", err)
	}
	return cs, nil
}

// AddRecipe appends a recipe the caller can see to one of their collections.
// Adding a recipe twice leaves the collection unchanged.
func (s *CollectionService) AddRecipe(ctx context.Context, caller auth.AuthContext, collectionID, recipeID string) (*model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.ownedCollection(collectionID, caller.UserID, "modify this collection"); err != nil {
		return nil, err
	}

	r, err := s.recipes.GetByID(recipeID)
	if err != nil {
		return nil, apperr.Internal("failed to load recipe", err)
	}
	if r == nil {
		return nil, apperr.NotFoundf("recipe not found: %s", recipeID)
	}
	if !canView(r, caller.UserID) {
		return nil, apperr.Forbidden("you do not have permission to add this recipe")
	}

	added, err := s.collections.AddRecipe(collectionID, recipeID)
	if errors.Is(err, store.ErrMissingReference) {
		return nil, apperr.NotFoundf("recipe not found: %s", recipeID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to add recipe to collection", err)
	}
	if added {
		s.logger.Info("recipe added to collection", "collection_id", collectionID, "recipe_id", recipeID)
	}
	return s.reload(collectionID)
}

func (s *CollectionService) RemoveRecipe(ctx context.Context, caller auth.AuthContext, collectionID, recipeID string) (*model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.ownedCollection(collectionID, caller.UserID, "modify this collection"); err != nil {
		return nil, err
	}

	removed, err := s.collections.RemoveRecipe(collectionID, recipeID)
	if err != nil {
		return nil, apperr.Internal("failed to remove recipe from collection", err)
	}
	if removed {
		s.logger.Info("recipe removed from collection", "collection_id", collectionID, "recipe_id", recipeID)
	}
	return s.reload(collectionID)
}

// Recipes lists the recipes of a collection the caller owns, in the order
// they were added. Recipes that have since gone private are left out.
func (s *CollectionService) Recipes(ctx context.Context, caller auth.AuthContext, collectionID string) ([]model.RecipeSummary, error) {
	c, err := s.ownedCollection(collectionID, caller.UserID, "view this collection")
	if err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, 0, len(c.RecipeIDs))
	for _, id := range c.RecipeIDs {
		r, err := s.recipes.GetByID(id)
		if err != nil {
			return nil, apperr.Internal("failed to load recipe", err)
		}
		if r != nil && canView(r, caller.UserID) {
			recipes = append(recipes, *r)
		}
	}
	return summarize(s.likes, recipes, caller.UserID)
}

func (s *CollectionService) Delete(ctx context.Context, caller auth.AuthContext, collectionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.ownedCollection(collectionID, caller.UserID, "delete this collection"); err != nil {
		return err
	}
	if err := s.collections.Delete(collectionID); err != nil {
		return apperr.Internal("failed to delete collection", err)
	}
	s.logger.Info("collection deleted", "collection_id", collectionID, "user_id", caller.UserID)
	return nil
}

func (s *CollectionService) ownedCollection(id, callerID, action string) (*model.Collection, error) {
	c, err := s.collections.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to load collection", err)
	}
	if c == nil {
		return nil, apperr.NotFoundf("collection not found: %s", id)
	}
	if err := auth.AssertOwner(c.UserID, callerID, action); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CollectionService) reload(id string) (*model.Collection, error) {
	c, err := s.collections.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to load collection", err)
	}
	if c == nil {
		return nil, apperr.NotFoundf("collection not found: %s", id)
	}
	return c, nil
}
