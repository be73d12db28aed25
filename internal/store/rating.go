package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/dishly/internal/model"
	"github.com/google/uuid"
)

// RatingStore owns rating facts and the cached rating aggregates on recipes.
type RatingStore struct {
	db *sql.DB
}

func NewRatingStore(db *sql.DB) *RatingStore {
	return &RatingStore{db: db}
}

func scanRating(scanner interface{ Scan(...any) error }) (*model.Rating, error) {
	var r model.Rating
	err := scanner.Scan(&r.ID, &r.RecipeID, &r.UserID, &r.Username, &r.Value, &r.Review, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const ratingCols = `id, recipe_id, user_id, username, value, review, created_at, updated_at`

// Upsert records userID's rating of recipeID. A second submission by the same
// user overwrites value and review in place and keeps the original id.
// created reports whether a new fact was inserted.
func (s *RatingStore) Upsert(recipeID, userID, username string, value float64, review string) (r *model.Rating, created bool, err error) {
	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO ratings (id, recipe_id, user_id, username, value, review)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (recipe_id, user_id) DO UPDATE SET
			value = excluded.value,
			review = excluded.review,
			username = excluded.username,
			updated_at = CURRENT_TIMESTAMP`,
		id, recipeID, userID, username, value, review,
	)
	if isForeignKeyViolation(err) {
		return nil, false, fmt.Errorf("upsert rating: %w", ErrMissingReference)
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert rating: %w", err)
	}

	r, err = s.Get(recipeID, userID)
	if err != nil {
		return nil, false, err
	}
	if r == nil {
		return nil, false, fmt.Errorf("upsert rating: row for recipe %s vanished", recipeID)
	}
	return r, r.ID == id, nil
}

func (s *RatingStore) Get(recipeID, userID string) (*model.Rating, error) {
	row := s.db.QueryRow(`SELECT `+ratingCols+` FROM ratings WHERE recipe_id = ? AND user_id = ?`, recipeID, userID)
	r, err := scanRating(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return r, nil
}

// ListByRecipe returns a recipe's ratings, most recently changed first.
func (s *RatingStore) ListByRecipe(recipeID string) ([]model.Rating, error) {
	rows, err := s.db.Query(
		`SELECT `+ratingCols+` FROM ratings WHERE recipe_id = ? ORDER BY updated_at DESC, rowid DESC`,
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []model.Rating{}
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, *r)
	}
	return ratings, rows.Err()
}

// Recalculate recomputes average_rating and rating_count for a recipe from
// its rating facts in a single statement, so the stored aggregate always
// reflects the facts committed when it ran. Returns false when the recipe
// does not exist.
func (s *RatingStore) Recalculate(recipeID string) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE recipes SET
			average_rating = (SELECT COALESCE(AVG(value), 0) FROM ratings WHERE recipe_id = recipes.id),
			rating_count = (SELECT COUNT(*) FROM ratings WHERE recipe_id = recipes.id)
		WHERE id = ?`,
		recipeID,
	)
	if err != nil {
		return false, fmt.Errorf("recalculate ratings: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
