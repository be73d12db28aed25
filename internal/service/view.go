// Package service holds the business rules: ownership, visibility, cached
// rating and like aggregates, and shopping list consolidation.
package service

import (
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/model"
)

// recipeView projects r for viewerID. The owner id is only exposed to the
// owner.
func recipeView(r *model.Recipe, viewerID string, liked bool) *model.RecipeView {
	v := &model.RecipeView{
		ID:              r.ID,
		Username:        r.Username,
		Title:           r.Title,
		Description:     r.Description,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		IsPublic:        r.IsPublic,
		AverageRating:   r.AverageRating,
		RatingCount:     r.RatingCount,
		LikeCount:       r.LikeCount,
		IsLiked:         liked,
		ImageURLs:       r.ImageURLs,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
		Categories:      r.Categories,
		Tags:            r.Tags,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if auth.IsOwner(r.UserID, viewerID) {
		v.UserID = r.UserID
	}
	return v
}

func recipeSummary(r *model.Recipe, liked bool) model.RecipeSummary {
	return model.RecipeSummary{
		ID:              r.ID,
		Title:           r.Title,
		ImageURLs:       r.ImageURLs,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		AverageRating:   r.AverageRating,
		RatingCount:     r.RatingCount,
		LikeCount:       r.LikeCount,
		IsLiked:         liked,
		Categories:      r.Categories,
		Difficulty:      r.Difficulty,
		Servings:        r.Servings,
		Username:        r.Username,
	}
}

// canView reports whether viewerID may read r.
func canView(r *model.Recipe, viewerID string) bool {
	return r.IsPublic || auth.IsOwner(r.UserID, viewerID)
}
