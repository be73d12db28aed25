package store

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dukerupert/dishly/internal/database"
)

func TestRatingUpsertCreatesThenUpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	r := createTestRecipe(t, db, alice, "Soup", true)
	rs := NewRatingStore(db)

	first, created, err := rs.Upsert(r.ID, bob.ID, bob.Username, 3, "ok")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Error("expected first upsert to create")
	}

	second, created, err := rs.Upsert(r.ID, bob.ID, bob.Username, 5, "great")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created {
		t.Error("expected second upsert to update")
	}
	if second.ID != first.ID {
		t.Errorf("id = %q, want preserved %q", second.ID, first.ID)
	}
	if second.Value != 5 || second.Review != "great" {
		t.Errorf("rating = %v %q, want 5 %q", second.Value, second.Review, "great")
	}

	ratings, err := rs.ListByRecipe(r.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ratings) != 1 {
		t.Errorf("len(ratings) = %d, want 1", len(ratings))
	}
}

func TestRatingRejectsOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	r := createTestRecipe(t, db, alice, "Soup", true)

	if _, _, err := NewRatingStore(db).Upsert(r.ID, "u1", "u1", 6, ""); err == nil {
		t.Error("expected check constraint error for rating 6")
	}
}

func TestRecalculate(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	r := createTestRecipe(t, db, alice, "Soup", true)
	rs := NewRatingStore(db)
	recipes := NewRecipeStore(db)

	found, err := rs.Recalculate(r.ID)
	if err != nil || !found {
		t.Fatalf("recalculate empty = %v, %v", found, err)
	}
	got, _ := recipes.GetByID(r.ID)
	if got.AverageRating != 0 || got.RatingCount != 0 {
		t.Errorf("empty aggregates = %v/%d, want 0/0", got.AverageRating, got.RatingCount)
	}

	rs.Upsert(r.ID, "u1", "u1", 4, "")
	rs.Upsert(r.ID, "u2", "u2", 5, "")
	rs.Upsert(r.ID, "u3", "u3", 2.5, "")
	if _, err := rs.Recalculate(r.ID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	got, _ = recipes.GetByID(r.ID)
	if math.Abs(got.AverageRating-11.5/3) > 1e-9 {
		t.Errorf("average = %v, want %v", got.AverageRating, 11.5/3)
	}
	if got.RatingCount != 3 {
		t.Errorf("count = %d, want 3", got.RatingCount)
	}
}

func TestRecalculateMissingRecipe(t *testing.T) {
	db := setupTestDB(t)
	found, err := NewRatingStore(db).Recalculate("missing")
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if found {
		t.Error("expected found = false for missing recipe")
	}
}

func TestConcurrentRatingsConverge(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "ratings.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	alice := createTestUser(t, db, "alice")
	r := createTestRecipe(t, db, alice, "Soup", true)
	rs := NewRatingStore(db)

	const raters = 20
	var wg sync.WaitGroup
	errs := make(chan error, raters)
	for i := 0; i < raters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("rater-%d", i)
			if _, _, err := rs.Upsert(r.ID, user, user, float64(i%5+1), ""); err != nil {
				errs <- err
				return
			}
			if _, err := rs.Recalculate(r.ID); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent rating: %v", err)
	}

	got, _ := NewRecipeStore(db).GetByID(r.ID)
	if got.RatingCount != raters {
		t.Errorf("count = %d, want %d", got.RatingCount, raters)
	}
	if math.Abs(got.AverageRating-3) > 1e-9 {
		t.Errorf("average = %v, want 3", got.AverageRating)
	}
}

func TestRatingUpsertMissingRecipe(t *testing.T) {
	db := setupTestDB(t)
	bob := createTestUser(t, db, "bob")

	_, _, err := NewRatingStore(db).Upsert("missing", bob.ID, bob.Username, 3, "")
	if !errors.Is(err, ErrMissingReference) {
		t.Errorf("err = %v, want ErrMissingReference", err)
	}
}
