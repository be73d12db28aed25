package model

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Order    int     `json:"order"`
}

type Instruction struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
}

// Recipe is the stored record. AverageRating, RatingCount and LikeCount are
// cached aggregates owned by the rating and like paths in the store.
type Recipe struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	Username        string        `json:"username"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	PrepTimeMinutes int           `json:"prep_time_minutes"`
	CookTimeMinutes int           `json:"cook_time_minutes"`
	Servings        int           `json:"servings"`
	Difficulty      Difficulty    `json:"difficulty"`
	IsPublic        bool          `json:"is_public"`
	ImageURLs       []string      `json:"image_urls"`
	Ingredients     []Ingredient  `json:"ingredients"`
	Instructions    []Instruction `json:"instructions"`
	Categories      []string      `json:"categories"`
	Tags            []string      `json:"tags"`
	AverageRating   float64       `json:"average_rating"`
	RatingCount     int           `json:"rating_count"`
	LikeCount       int           `json:"like_count"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// RecipeView is a recipe as seen by a particular viewer.
// UserID is only populated when the viewer owns the recipe.
type RecipeView struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id,omitempty"`
	Username        string        `json:"username"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	PrepTimeMinutes int           `json:"prep_time_minutes"`
	CookTimeMinutes int           `json:"cook_time_minutes"`
	Servings        int           `json:"servings"`
	Difficulty      Difficulty    `json:"difficulty"`
	IsPublic        bool          `json:"is_public"`
	AverageRating   float64       `json:"average_rating"`
	RatingCount     int           `json:"rating_count"`
	LikeCount       int           `json:"like_count"`
	IsLiked         bool          `json:"is_liked"`
	ImageURLs       []string      `json:"image_urls"`
	Ingredients     []Ingredient  `json:"ingredients"`
	Instructions    []Instruction `json:"instructions"`
	Categories      []string      `json:"categories"`
	Tags            []string      `json:"tags"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// RecipeSummary is the list-card projection of a recipe.
type RecipeSummary struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ImageURLs       []string   `json:"image_urls"`
	PrepTimeMinutes int        `json:"prep_time_minutes"`
	CookTimeMinutes int        `json:"cook_time_minutes"`
	AverageRating   float64    `json:"average_rating"`
	RatingCount     int        `json:"rating_count"`
	LikeCount       int        `json:"like_count"`
	IsLiked         bool       `json:"is_liked"`
	Categories      []string   `json:"categories"`
	Difficulty      Difficulty `json:"difficulty"`
	Servings        int        `json:"servings"`
	Username        string     `json:"username"`
}

// RecipeFilter narrows recipe listings. Empty fields are ignored.
// Search matches titles; Query matches title, description, tags and author.
type RecipeFilter struct {
	Search   string
	Query    string
	Category string
	Tag      string
}

// Page is a window over a larger result set.
type Page[T any] struct {
	Items         []T `json:"content"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
}
