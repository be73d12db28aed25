package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dukerupert/dishly/internal/model"
	"github.com/google/uuid"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var isPublic int
	var imageURLs, ingredients, instructions, categories, tags string

	err := scanner.Scan(
		&r.ID, &r.UserID, &r.Username, &r.Title, &r.Description,
		&r.PrepTimeMinutes, &r.CookTimeMinutes, &r.Servings, &r.Difficulty, &isPublic,
		&imageURLs, &ingredients, &instructions, &categories, &tags,
		&r.AverageRating, &r.RatingCount, &r.LikeCount, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.IsPublic = isPublic != 0

	for _, f := range []struct {
		raw string
		dst any
	}{
		{imageURLs, &r.ImageURLs},
		{ingredients, &r.Ingredients},
		{instructions, &r.Instructions},
		{categories, &r.Categories},
		{tags, &r.Tags},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decode recipe %s: %w", r.ID, err)
		}
	}
	return &r, nil
}

const recipeCols = `id, user_id, username, title, description,
	prep_time_minutes, cook_time_minutes, servings, difficulty, is_public,
	image_urls, ingredients, instructions, categories, tags,
	average_rating, rating_count, like_count, created_at, updated_at`

// recipeContent holds the JSON-encoded list columns of a recipe.
type recipeContent struct {
	imageURLs, ingredients, instructions, categories, tags string
}

func encodeContent(r *model.Recipe) (recipeContent, error) {
	var c recipeContent
	for _, f := range []struct {
		src any
		dst *string
	}{
		{nonNil(r.ImageURLs), &c.imageURLs},
		{nonNil(r.Ingredients), &c.ingredients},
		{nonNil(r.Instructions), &c.instructions},
		{nonNil(r.Categories), &c.categories},
		{nonNil(r.Tags), &c.tags},
	} {
		b, err := json.Marshal(f.src)
		if err != nil {
			return c, fmt.Errorf("encode recipe: %w", err)
		}
		*f.dst = string(b)
	}
	return c, nil
}

// nonNil keeps nil slices from being stored as JSON null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Create inserts a new recipe owned by r.UserID. Aggregates start at zero
// regardless of what r carries.
func (s *RecipeStore) Create(r *model.Recipe) (*model.Recipe, error) {
	c, err := encodeContent(r)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO recipes (id, user_id, username, title, description,
			prep_time_minutes, cook_time_minutes, servings, difficulty, is_public,
			image_urls, ingredients, instructions, categories, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.UserID, r.Username, r.Title, r.Description,
		r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings, r.Difficulty, boolToInt(r.IsPublic),
		c.imageURLs, c.ingredients, c.instructions, c.categories, c.tags,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) GetByID(id string) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// Update writes the content fields of r. Owner, visibility and aggregates
// are left untouched. Returns nil when the recipe does not exist.
func (s *RecipeStore) Update(r *model.Recipe) (*model.Recipe, error) {
	c, err := encodeContent(r)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`UPDATE recipes SET title = ?, description = ?, prep_time_minutes = ?,
			cook_time_minutes = ?, servings = ?, difficulty = ?,
			image_urls = ?, ingredients = ?, instructions = ?, categories = ?, tags = ?
		WHERE id = ?`,
		r.Title, r.Description, r.PrepTimeMinutes,
		r.CookTimeMinutes, r.Servings, r.Difficulty,
		c.imageURLs, c.ingredients, c.instructions, c.categories, c.tags,
		r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetByID(r.ID)
}

func (s *RecipeStore) SetVisibility(id string, public bool) (*model.Recipe, error) {
	result, err := s.db.Exec(`UPDATE recipes SET is_public = ? WHERE id = ?`, boolToInt(public), id)
	if err != nil {
		return nil, fmt.Errorf("set recipe visibility: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetByID(id)
}

// Delete removes a recipe. Ratings, likes and collection entries go with it.
func (s *RecipeStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// ListByOwner returns the user's recipes, newest first.
func (s *RecipeStore) ListByOwner(userID string, f model.RecipeFilter) ([]model.Recipe, error) {
	where, args := filterClause(f)
	where = append([]string{"user_id = ?"}, where...)
	args = append([]any{userID}, args...)

	return s.query(
		`SELECT `+recipeCols+` FROM recipes WHERE `+strings.Join(where, " AND ")+
			` ORDER BY created_at DESC, rowid DESC`,
		args...,
	)
}

// ListPublic returns one page of public recipes, newest first, and the total
// number of matches. page is zero-based.
func (s *RecipeStore) ListPublic(f model.RecipeFilter, page, size int) ([]model.Recipe, int, error) {
	where, args := filterClause(f)
	where = append([]string{"is_public = 1"}, where...)
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM recipes WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count public recipes: %w", err)
	}

	recipes, err := s.query(
		`SELECT `+recipeCols+` FROM recipes WHERE `+cond+
			` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		append(args, size, page*size)...,
	)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ListMostLiked returns up to limit public recipes by like count, ties kept
// in insertion order.
func (s *RecipeStore) ListMostLiked(limit int) ([]model.Recipe, error) {
	return s.query(
		`SELECT `+recipeCols+` FROM recipes WHERE is_public = 1
		ORDER BY like_count DESC, rowid ASC LIMIT ?`,
		limit,
	)
}

func (s *RecipeStore) query(q string, args ...any) ([]model.Recipe, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

// filterClause turns a filter into AND-able conditions. LIKE is
// case-insensitive for ASCII in SQLite.
func filterClause(f model.RecipeFilter) ([]string, []any) {
	var where []string
	var args []any

	if f.Search != "" {
		where = append(where, "title LIKE ? ESCAPE '\\'")
		args = append(args, likePattern(f.Search))
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where = append(where, `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR username LIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM json_each(recipes.tags) WHERE json_each.value LIKE ? ESCAPE '\'))`)
		args = append(args, p, p, p, p)
	}
	if f.Category != "" {
		where = append(where, "EXISTS (SELECT 1 FROM json_each(recipes.categories) WHERE lower(json_each.value) = lower(?))")
		args = append(args, f.Category)
	}
	if f.Tag != "" {
		where = append(where, "EXISTS (SELECT 1 FROM json_each(recipes.tags) WHERE lower(json_each.value) = lower(?))")
		args = append(args, f.Tag)
	}
	return where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
