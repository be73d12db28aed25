package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/ingredient"
	"github.com/dukerupert/dishly/internal/metrics"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/store"
)

type GenerateListInput struct {
	Name      string   `json:"name" validate:"required,max=200"`
	RecipeIDs []string `json:"recipe_ids" validate:"required,dive,required"`
}

type ShoppingListService struct {
	lists   *store.ShoppingListStore
	recipes *store.RecipeStore
	logger  *slog.Logger
}

func NewShoppingListService(lists *store.ShoppingListStore, recipes *store.RecipeStore, logger *slog.Logger) *ShoppingListService {
	return &ShoppingListService{
		lists:   lists,
		recipes: recipes,
		logger:  logger.With("component", "shopping_lists"),
	}
}

// Generate merges the ingredients of the given recipes into a new list owned
// by caller. Every recipe must exist; nothing is stored otherwise.
func (s *ShoppingListService) Generate(ctx context.Context, caller auth.AuthContext, name string, recipeIDs []string) (*model.ShoppingList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(recipeIDs) == 0 {
		return nil, apperr.Validation("at least one recipe is required")
	}

	recipes := make([]*model.Recipe, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		r, err := s.recipes.GetByID(id)
		if err != nil {
			return nil, apperr.Internal("failed to load recipe", err)
		}
		if r == nil {
			return nil, apperr.NotFoundf("recipe not found: %s", id)
		}
		recipes = append(recipes, r)
	}

	items := ingredient.Merge(recipes)
	list, err := s.lists.Create(caller.UserID, name, items)
	if err != nil {
		return nil, apperr.Internal("failed to save shopping list", err)
	}
	metrics.RecordShoppingList(len(items))

	s.logger.Info("shopping list generated",
		"list_id", list.ID,
		"user_id", caller.UserID,
		"recipes", len(recipeIDs),
		"items", len(items),
	)
	return list, nil
}

// ToggleItem flips the checked flag of the item at index.
func (s *ShoppingListService) ToggleItem(ctx context.Context, caller auth.AuthContext, listID string, index int) (*model.ShoppingList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := s.ownedList(listID, caller.UserID, "update this shopping list")
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(list.Items) {
		return nil, apperr.Validationf("invalid item index %d: list has %d items", index, len(list.Items))
	}

	toggled, err := s.lists.ToggleItem(list.ID, index)
	if err != nil {
		return nil, apperr.Internal("failed to update shopping list", err)
	}
	if !toggled {
		return nil, apperr.NotFoundf("shopping list not found: %s", listID)
	}

	updated, err := s.lists.GetByID(list.ID)
	if err != nil {
		return nil, apperr.Internal("failed to load shopping list", err)
	}
	if updated == nil {
		return nil, apperr.NotFoundf("shopping list not found: %s", listID)
	}

	s.logger.Debug("shopping item toggled", "list_id", listID, "index", index, "checked", updated.Items[index].Checked)
	return updated, nil
}

func (s *ShoppingListService) List(ctx context.Context, caller auth.AuthContext) ([]model.ShoppingList, error) {
	lists, err := s.lists.ListByOwner(caller.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to list shopping lists", err)
	}
	return lists, nil
}

func (s *ShoppingListService) Get(ctx context.Context, caller auth.AuthContext, listID string) (*model.ShoppingList, error) {
	return s.ownedList(listID, caller.UserID, "view this shopping list")
}

func (s *ShoppingListService) Delete(ctx context.Context, caller auth.AuthContext, listID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.ownedList(listID, caller.UserID, "delete this shopping list"); err != nil {
		return err
	}
	if err := s.lists.Delete(listID); err != nil {
		return apperr.Internal("failed to delete shopping list", err)
	}
	s.logger.Info("shopping list deleted", "list_id", listID, "user_id", caller.UserID)
	return nil
}

func (s *ShoppingListService) ownedList(id, callerID, action string) (*model.ShoppingList, error) {
	list, err := s.lists.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to load shopping list", err)
	}
	if list == nil {
		return nil, apperr.NotFoundf("shopping list not found: %s", id)
	}
	if err := auth.AssertOwner(list.UserID, callerID, action); err != nil {
		return nil, err
	}
	return list, nil
}
