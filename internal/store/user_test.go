package store

import "testing"

func TestUserCreate(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)

	u, err := us.Create("alice@example.com", "alice", "Alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == "" {
		t.Error("expected generated ID")
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", u.Email, "alice@example.com")
	}
	if u.Username != "alice" {
		t.Errorf("username = %q, want %q", u.Username, "alice")
	}
	if u.PasswordHash != "hash" {
		t.Errorf("password hash = %q, want %q", u.PasswordHash, "hash")
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)

	if _, err := us.Create("alice@example.com", "alice", "Alice", "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := us.Create("alice@example.com", "alice2", "Alice", "hash"); err == nil {
		t.Error("expected error for duplicate email")
	}
	if _, err := us.Create("other@example.com", "alice", "Alice", "hash"); err == nil {
		t.Error("expected error for duplicate username")
	}
}

func TestUserLookups(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	created, _ := us.Create("alice@example.com", "alice", "Alice", "hash")

	byID, err := us.GetByID(created.ID)
	if err != nil || byID == nil {
		t.Fatalf("get by id = %v, %v", byID, err)
	}
	byEmail, err := us.GetByEmail("alice@example.com")
	if err != nil || byEmail == nil || byEmail.ID != created.ID {
		t.Errorf("get by email = %v, %v", byEmail, err)
	}
	byName, err := us.GetByUsername("alice")
	if err != nil || byName == nil || byName.ID != created.ID {
		t.Errorf("get by username = %v, %v", byName, err)
	}

	missing, err := us.GetByID("nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for nonexistent user")
	}
}

func TestUserExists(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	us.Create("alice@example.com", "alice", "Alice", "hash")

	emailTaken, usernameTaken, err := us.Exists("alice@example.com", "bob")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !emailTaken || usernameTaken {
		t.Errorf("exists = %v, %v; want true, false", emailTaken, usernameTaken)
	}
}
