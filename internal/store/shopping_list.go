package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dukerupert/dishly/internal/model"
	"github.com/google/uuid"
)

type ShoppingListStore struct {
	db *sql.DB
}

func NewShoppingListStore(db *sql.DB) *ShoppingListStore {
	return &ShoppingListStore{db: db}
}

func scanShoppingList(scanner interface{ Scan(...any) error }) (*model.ShoppingList, error) {
	var l model.ShoppingList
	var items string
	if err := scanner.Scan(&l.ID, &l.UserID, &l.Name, &items, &l.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &l.Items); err != nil {
		return nil, fmt.Errorf("decode shopping list %s: %w", l.ID, err)
	}
	return &l, nil
}

const shoppingListCols = `id, user_id, name, items, created_at`

func (s *ShoppingListStore) Create(userID, name string, items []model.ShoppingItem) (*model.ShoppingList, error) {
	raw, err := json.Marshal(nonNil(items))
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO shopping_lists (id, user_id, name, items) VALUES (?, ?, ?, ?)`,
		id, userID, name, string(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("insert shopping list: %w", err)
	}
	return s.GetByID(id)
}

func (s *ShoppingListStore) GetByID(id string) (*model.ShoppingList, error) {
	row := s.db.QueryRow(`SELECT `+shoppingListCols+` FROM shopping_lists WHERE id = ?`, id)
	l, err := scanShoppingList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shopping list: %w", err)
	}
	return l, nil
}

func (s *ShoppingListStore) ListByOwner(userID string) ([]model.ShoppingList, error) {
	rows, err := s.db.Query(
		`SELECT `+shoppingListCols+` FROM shopping_lists WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}
	defer rows.Close()

	lists := []model.ShoppingList{}
	for rows.Next() {
		l, err := scanShoppingList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// ToggleItem flips the checked flag of the item at index in one statement,
// so concurrent toggles of different items never overwrite each other.
// toggled is false when the list does not exist or has no such index.
func (s *ShoppingListStore) ToggleItem(id string, index int) (toggled bool, err error) {
	result, err := s.db.Exec(
		`UPDATE shopping_lists
		SET items = json_set(items, '$[' || ? || '].is_checked',
			json(CASE WHEN json_extract(items, '$[' || ? || '].is_checked') THEN 'false' ELSE 'true' END))
		WHERE id = ? AND ? >= 0 AND ? < json_array_length(items)`,
		index, index, id, index, index,
	)
	if err != nil {
		return false, fmt.Errorf("toggle shopping item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *ShoppingListStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM shopping_lists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}
	return nil
}
