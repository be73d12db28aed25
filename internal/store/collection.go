package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/dishly/internal/model"
	"github.com/google/uuid"
)

type CollectionStore struct {
	db *sql.DB
}

func NewCollectionStore(db *sql.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

func scanCollection(scanner interface{ Scan(...any) error }) (*model.Collection, error) {
	var c model.Collection
	if err := scanner.Scan(&c.ID, &c.UserID, &c.Name, &c.RecipeCount, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

const collectionSelect = `SELECT c.id, c.user_id, c.name,
	(SELECT COUNT(*) FROM collection_recipes cr WHERE cr.collection_id = c.id),
	c.created_at
	FROM collections c`

func (s *CollectionStore) Create(userID, name string) (*model.Collection, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO collections (id, user_id, name) VALUES (?, ?, ?)`, id, userID, name); err != nil {
		return nil, fmt.Errorf("insert collection: %w", err)
	}
	return s.GetByID(id)
}

// GetByID returns a collection with its recipe ids in insertion order.
func (s *CollectionStore) GetByID(id string) (*model.Collection, error) {
	row := s.db.QueryRow(collectionSelect+` WHERE c.id = ?`, id)
	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	ids, err := s.RecipeIDs(id)
	if err != nil {
		return nil, err
	}
	c.RecipeIDs = ids
	return c, nil
}

func (s *CollectionStore) ListByOwner(userID string) ([]model.Collection, error) {
	rows, err := s.db.Query(collectionSelect+` WHERE c.user_id = ? ORDER BY c.created_at DESC, c.rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	collections := []model.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, *c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range collections {
		ids, err := s.RecipeIDs(collections[i].ID)
		if err != nil {
			return nil, err
		}
		collections[i].RecipeIDs = ids
	}
	return collections, nil
}

// RecipeIDs returns the recipes in a collection in the order they were added.
func (s *CollectionStore) RecipeIDs(collectionID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT recipe_id FROM collection_recipes WHERE collection_id = ? ORDER BY position ASC`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list collection recipes: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan collection recipe: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddRecipe appends a recipe to a collection. Adding a recipe that is
// already present is a no-op and reports added = false.
func (s *CollectionStore) AddRecipe(collectionID, recipeID string) (added bool, err error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO collection_recipes (collection_id, recipe_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM collection_recipes WHERE collection_id = ?))`,
		collectionID, recipeID, collectionID,
	)
	if isForeignKeyViolation(err) {
		return false, fmt.Errorf("add collection recipe: %w", ErrMissingReference)
	}
	if err != nil {
		return false, fmt.Errorf("add collection recipe: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *CollectionStore) RemoveRecipe(collectionID, recipeID string) (removed bool, err error) {
	result, err := s.db.Exec(
		`DELETE FROM collection_recipes WHERE collection_id = ? AND recipe_id = ?`,
		collectionID, recipeID,
	)
	if err != nil {
		return false, fmt.Errorf("remove collection recipe: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *CollectionStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM collections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}
