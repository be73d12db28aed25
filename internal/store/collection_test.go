package store

import (
	"errors"
	"testing"
)

func TestCollectionCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	cs := NewCollectionStore(db)

	c, err := cs.Create(alice.ID, "Weeknight")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "Weeknight" || c.UserID != alice.ID {
		t.Errorf("collection = %+v", c)
	}
	if c.RecipeIDs == nil || len(c.RecipeIDs) != 0 || c.RecipeCount != 0 {
		t.Errorf("new collection recipes = %#v (%d)", c.RecipeIDs, c.RecipeCount)
	}

	missing, err := cs.GetByID("missing")
	if err != nil || missing != nil {
		t.Errorf("get missing = %v, %v", missing, err)
	}
}

func TestCollectionAddRecipeDedupesAndKeepsOrder(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	a := createTestRecipe(t, db, alice, "A", true)
	b := createTestRecipe(t, db, alice, "B", true)
	cs := NewCollectionStore(db)
	c, _ := cs.Create(alice.ID, "Favorites")

	for _, id := range []string{b.ID, a.ID, b.ID} {
		if _, err := cs.AddRecipe(c.ID, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	added, err := cs.AddRecipe(c.ID, a.ID)
	if err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if added {
		t.Error("expected duplicate add to report added = false")
	}

	got, _ := cs.GetByID(c.ID)
	if got.RecipeCount != 2 {
		t.Errorf("recipe count = %d, want 2", got.RecipeCount)
	}
	if len(got.RecipeIDs) != 2 || got.RecipeIDs[0] != b.ID || got.RecipeIDs[1] != a.ID {
		t.Errorf("recipe ids = %v, want [%s %s]", got.RecipeIDs, b.ID, a.ID)
	}
}

func TestCollectionRemoveRecipe(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	a := createTestRecipe(t, db, alice, "A", true)
	b := createTestRecipe(t, db, alice, "B", true)
	cs := NewCollectionStore(db)
	c, _ := cs.Create(alice.ID, "Favorites")
	cs.AddRecipe(c.ID, a.ID)
	cs.AddRecipe(c.ID, b.ID)

	removed, err := cs.RemoveRecipe(c.ID, a.ID)
	if err != nil || !removed {
		t.Fatalf("remove = %v, %v", removed, err)
	}
	removed, _ = cs.RemoveRecipe(c.ID, a.ID)
	if removed {
		t.Error("expected second remove to report removed = false")
	}

	// Re-adding goes to the end.
	cs.AddRecipe(c.ID, a.ID)
	ids, _ := cs.RecipeIDs(c.ID)
	if len(ids) != 2 || ids[0] != b.ID || ids[1] != a.ID {
		t.Errorf("recipe ids = %v, want [%s %s]", ids, b.ID, a.ID)
	}
}

func TestCollectionListByOwnerAndDelete(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	r := createTestRecipe(t, db, alice, "A", true)
	cs := NewCollectionStore(db)

	first, _ := cs.Create(alice.ID, "First")
	cs.Create(alice.ID, "Second")
	cs.Create(bob.ID, "Bob's")
	cs.AddRecipe(first.ID, r.ID)

	list, err := cs.ListByOwner(alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[1].Name != "First" || len(list[1].RecipeIDs) != 1 {
		t.Errorf("list[1] = %+v", list[1])
	}

	if err := cs.Delete(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var n int
	db.QueryRow(`SELECT COUNT(*) FROM collection_recipes`).Scan(&n)
	if n != 0 {
		t.Errorf("collection_recipes rows = %d, want 0", n)
	}
	if got, _ := NewRecipeStore(db).GetByID(r.ID); got == nil {
		t.Error("deleting a collection must not delete its recipes")
	}
}

func TestCollectionAddRecipeMissingReference(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	r := createTestRecipe(t, db, alice, "A", true)
	cs := NewCollectionStore(db)
	c, _ := cs.Create(alice.ID, "Favorites")

	if _, err := cs.AddRecipe(c.ID, "missing"); !errors.Is(err, ErrMissingReference) {
		t.Errorf("missing recipe: err = %v, want ErrMissingReference", err)
	}
	if _, err := cs.AddRecipe("missing", r.ID); !errors.Is(err, ErrMissingReference) {
		t.Errorf("missing collection: err = %v, want ErrMissingReference", err)
	}
	got, _ := cs.GetByID(c.ID)
	if got.RecipeCount != 0 {
		t.Errorf("recipe count = %d, want 0", got.RecipeCount)
	}
}
