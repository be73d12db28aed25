package model

import "time"

type Collection struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	RecipeCount int       `json:"recipe_count"`
	RecipeIDs   []string  `json:"recipe_ids"`
	CreatedAt   time.Time `json:"created_at"`
}
