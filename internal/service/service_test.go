package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/database"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/store"
)

type testEnv struct {
	db          *sql.DB
	recipes     *store.RecipeStore
	lists       *store.ShoppingListStore
	agg         *AggregationService
	recipeSvc   *RecipeService
	shopping    *ShoppingListService
	collections *CollectionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return newTestEnvWithDB(t, db)
}

func newTestEnvWithDB(t *testing.T, db *sql.DB) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recipes := store.NewRecipeStore(db)
	likes := store.NewLikeStore(db)
	lists := store.NewShoppingListStore(db)

	return &testEnv{
		db:          db,
		recipes:     recipes,
		lists:       lists,
		agg:         NewAggregationService(recipes, store.NewRatingStore(db), likes, logger),
		recipeSvc:   NewRecipeService(recipes, likes, logger),
		shopping:    NewShoppingListService(lists, recipes, logger),
		collections: NewCollectionService(store.NewCollectionStore(db), recipes, likes, logger),
	}
}

func (e *testEnv) user(t *testing.T, username string) auth.AuthContext {
	t.Helper()
	u, err := store.NewUserStore(e.db).Create(username+"@example.com", username, username, "hash")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return auth.AuthContext{UserID: u.ID, Username: u.Username}
}

func (e *testEnv) recipe(t *testing.T, owner auth.AuthContext, title string, public bool, ings ...IngredientInput) *model.RecipeView {
	t.Helper()
	v, err := e.recipeSvc.Create(context.Background(), owner, RecipeInput{
		Title:       title,
		Servings:    2,
		Difficulty:  "easy",
		IsPublic:    public,
		Ingredients: ings,
	})
	if err != nil {
		t.Fatalf("create recipe %s: %v", title, err)
	}
	return v
}

func assertCode(t *testing.T, err error, want *apperr.Error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want code %s", err, want.Code)
	}
}
