package store

import (
	"database/sql"
	"testing"

	"github.com/dukerupert/dishly/internal/database"
	"github.com/dukerupert/dishly/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) *model.User {
	t.Helper()
	u, err := NewUserStore(db).Create(username+"@example.com", username, username, "hash")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func createTestRecipe(t *testing.T, db *sql.DB, owner *model.User, title string, public bool) *model.Recipe {
	t.Helper()
	r, err := NewRecipeStore(db).Create(&model.Recipe{
		UserID:     owner.ID,
		Username:   owner.Username,
		Title:      title,
		Servings:   2,
		Difficulty: model.DifficultyEasy,
		IsPublic:   public,
		Ingredients: []model.Ingredient{
			{Name: "flour", Quantity: 200, Unit: "g", Order: 0},
		},
	})
	if err != nil {
		t.Fatalf("create recipe %s: %v", title, err)
	}
	return r
}
