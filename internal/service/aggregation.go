package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/metrics"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/store"
)

// AggregationService maintains the cached rating and like aggregates on
// recipes. Ratings are recomputed from facts after every write; likes are
// counted incrementally as facts appear and disappear.
type AggregationService struct {
	recipes *store.RecipeStore
	ratings *store.RatingStore
	likes   *store.LikeStore
	logger  *slog.Logger
}

func NewAggregationService(recipes *store.RecipeStore, ratings *store.RatingStore, likes *store.LikeStore, logger *slog.Logger) *AggregationService {
	return &AggregationService{
		recipes: recipes,
		ratings: ratings,
		likes:   likes,
		logger:  logger.With("component", "aggregation"),
	}
}

// View returns recipeID as seen by viewerID, which may be empty for an
// anonymous caller. Private recipes are only visible to their owner.
func (s *AggregationService) View(ctx context.Context, recipeID, viewerID string) (*model.RecipeView, error) {
	r, err := s.visibleRecipe(recipeID, viewerID, "view this recipe")
	if err != nil {
		return nil, err
	}
	return s.view(r, viewerID)
}

// Rate records caller's rating of a recipe they do not own and recomputes
// the recipe's average and count. Value bounds are checked by the caller.
func (s *AggregationService) Rate(ctx context.Context, caller auth.AuthContext, recipeID string, value float64, review string) (*model.RecipeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := s.getRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if r.UserID == caller.UserID {
		return nil, apperr.Forbidden("you cannot rate your own recipe")
	}
	if !canView(r, caller.UserID) {
		return nil, apperr.Forbidden("you do not have permission to rate this recipe")
	}

	rating, created, err := s.ratings.Upsert(recipeID, caller.UserID, caller.Username, value, review)
	if errors.Is(err, store.ErrMissingReference) {
		return nil, apperr.NotFoundf("recipe not found: %s", recipeID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to save rating", err)
	}
	if err := s.Recalculate(ctx, recipeID); err != nil {
		return nil, err
	}
	metrics.RecordRating(created)

	s.logger.Info("recipe rated",
		"recipe_id", recipeID,
		"rating_id", rating.ID,
		"user_id", caller.UserID,
		"value", value,
		"created", created,
	)
	return s.reload(recipeID, caller.UserID)
}

// Recalculate recomputes a recipe's average rating and rating count from
// its rating facts.
func (s *AggregationService) Recalculate(ctx context.Context, recipeID string) error {
	found, err := s.ratings.Recalculate(recipeID)
	if err != nil {
		return apperr.Internal("failed to recalculate ratings", err)
	}
	if !found {
		return apperr.NotFoundf("recipe not found: %s", recipeID)
	}
	return nil
}

// Ratings lists the ratings of a recipe visible to viewerID.
func (s *AggregationService) Ratings(ctx context.Context, recipeID, viewerID string) ([]model.Rating, error) {
	if _, err := s.visibleRecipe(recipeID, viewerID, "view this recipe"); err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByRecipe(recipeID)
	if err != nil {
		return nil, apperr.Internal("failed to list ratings", err)
	}
	return ratings, nil
}

// Like marks the recipe as liked by caller. Liking twice is a no-op.
func (s *AggregationService) Like(ctx context.Context, caller auth.AuthContext, recipeID string) (*model.RecipeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.visibleRecipe(recipeID, caller.UserID, "like this recipe"); err != nil {
		return nil, err
	}

	changed, err := s.likes.Add(recipeID, caller.UserID, caller.Username)
	if errors.Is(err, store.ErrMissingReference) {
		return nil, apperr.NotFoundf("recipe not found: %s", recipeID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to like recipe", err)
	}
	metrics.RecordLikeChange("like", changed)
	if changed {
		s.logger.Info("recipe liked", "recipe_id", recipeID, "user_id", caller.UserID)
	}
	return s.reload(recipeID, caller.UserID)
}

// Unlike removes caller's like. Unliking a recipe that is not liked is a
// no-op.
func (s *AggregationService) Unlike(ctx context.Context, caller auth.AuthContext, recipeID string) (*model.RecipeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.visibleRecipe(recipeID, caller.UserID, "unlike this recipe"); err != nil {
		return nil, err
	}

	changed, err := s.likes.Remove(recipeID, caller.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to unlike recipe", err)
	}
	metrics.RecordLikeChange("unlike", changed)
	if changed {
		s.logger.Info("recipe unliked", "recipe_id", recipeID, "user_id", caller.UserID)
	}
	return s.reload(recipeID, caller.UserID)
}

// MostLiked returns the top limit public recipes by like count.
func (s *AggregationService) MostLiked(ctx context.Context, limit int, viewerID string) ([]model.RecipeSummary, error) {
	if limit < 1 {
		return nil, apperr.Validation("limit must be at least 1")
	}
	recipes, err := s.recipes.ListMostLiked(limit)
	if err != nil {
		return nil, apperr.Internal("failed to list recipes", err)
	}
	return summarize(s.likes, recipes, viewerID)
}

func (s *AggregationService) getRecipe(id string) (*model.Recipe, error) {
	r, err := s.recipes.GetByID(id)
	if err != nil {
		return nil, apperr.Internal("failed to load recipe", err)
	}
	if r == nil {
		return nil, apperr.NotFoundf("recipe not found: %s", id)
	}
	return r, nil
}

func (s *AggregationService) visibleRecipe(id, viewerID, action string) (*model.Recipe, error) {
	r, err := s.getRecipe(id)
	if err != nil {
		return nil, err
	}
	if !canView(r, viewerID) {
		return nil, apperr.Forbiddenf("you do not have permission to %s", action)
	}
	return r, nil
}

func (s *AggregationService) reload(id, viewerID string) (*model.RecipeView, error) {
	r, err := s.getRecipe(id)
	if err != nil {
		return nil, err
	}
	return s.view(r, viewerID)
}

func (s *AggregationService) view(r *model.Recipe, viewerID string) (*model.RecipeView, error) {
	liked := false
	if viewerID != "" {
		var err error
		liked, err = s.likes.Exists(r.ID, viewerID)
		if err != nil {
			return nil, apperr.Internal("failed to load like state", err)
		}
	}
	return recipeView(r, viewerID, liked), nil
}

// summarize builds list cards for recipes with is_liked resolved for viewerID.
func summarize(likes *store.LikeStore, recipes []model.Recipe, viewerID string) ([]model.RecipeSummary, error) {
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	liked, err := likes.LikedAmong(viewerID, ids)
	if err != nil {
		return nil, apperr.Internal("failed to load like state", err)
	}

	out := make([]model.RecipeSummary, len(recipes))
	for i := range recipes {
		out[i] = recipeSummary(&recipes[i], liked[recipes[i].ID])
	}
	return out, nil
}
