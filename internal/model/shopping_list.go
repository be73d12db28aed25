package model

import "time"

type ShoppingItem struct {
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	Checked        bool    `json:"is_checked"`
}

type ShoppingList struct {
	ID        string         `json:"id"`
	UserID    string         `json:"-"`
	Name      string         `json:"name"`
	Items     []ShoppingItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}
