package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// LikeStore owns like facts and the cached like_count on recipes. The count
// only moves when a fact is actually inserted or deleted.
type LikeStore struct {
	db *sql.DB
}

func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

// Add records that userID likes recipeID. changed is false when the like
// already existed.
func (s *LikeStore) Add(recipeID, userID, username string) (changed bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT OR IGNORE INTO likes (id, recipe_id, user_id, username) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), recipeID, userID, username,
	)
	if isForeignKeyViolation(err) {
		return false, fmt.Errorf("insert like: %w", ErrMissingReference)
	}
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`UPDATE recipes SET like_count = like_count + 1 WHERE id = ?`, recipeID); err != nil {
		return false, fmt.Errorf("increment like count: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit like: %w", err)
	}
	return true, nil
}

// Remove deletes userID's like of recipeID. changed is false when there was
// nothing to remove. The cached count never drops below zero.
func (s *LikeStore) Remove(recipeID, userID string) (changed bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM likes WHERE recipe_id = ? AND user_id = ?`, recipeID, userID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`UPDATE recipes SET like_count = MAX(like_count - 1, 0) WHERE id = ?`, recipeID); err != nil {
		return false, fmt.Errorf("decrement like count: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit unlike: %w", err)
	}
	return true, nil
}

func (s *LikeStore) Exists(recipeID, userID string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM likes WHERE recipe_id = ? AND user_id = ?`, recipeID, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return n > 0, nil
}

// LikedAmong returns which of recipeIDs userID has liked.
func (s *LikeStore) LikedAmong(userID string, recipeIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(recipeIDs) == 0 {
		return liked, nil
	}

	args := make([]any, 0, len(recipeIDs)+1)
	args = append(args, userID)
	for _, id := range recipeIDs {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(recipeIDs)), ",")

	rows, err := s.db.Query(
		`SELECT recipe_id FROM likes WHERE user_id = ? AND recipe_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		liked[id] = true
	}
	return liked, rows.Err()
}
