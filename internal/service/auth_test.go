package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/database"
	"github.com/dukerupert/dishly/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *auth.TokenManager) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	svc := NewAuthService(store.NewUserStore(db), tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.SetBcryptCost(bcrypt.MinCost)
	return svc, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "Alice@Example.com", Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", res.User.Email)
	}
	ac, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ac.UserID != res.User.ID || ac.Username != "alice" {
		t.Errorf("token identifies %+v", ac)
	}

	for _, id := range []string{"alice", "ALICE@example.com"} {
		if _, err := svc.Login(ctx, LoginInput{Identifier: id, Password: "password123"}); err != nil {
			t.Errorf("login as %q: %v", id, err)
		}
	}

	me, err := svc.Me(ctx, ac)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Username != "alice" {
		t.Errorf("me = %+v", me)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	svc.Register(ctx, RegisterInput{Email: "alice@example.com", Username: "alice", Password: "password123"})

	_, err := svc.Login(ctx, LoginInput{Identifier: "alice", Password: "wrong-password"})
	assertCode(t, err, apperr.ErrUnauthorized)
	_, err = svc.Login(ctx, LoginInput{Identifier: "nobody", Password: "password123"})
	assertCode(t, err, apperr.ErrUnauthorized)
}

func TestRegisterConflicts(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	svc.Register(ctx, RegisterInput{Email: "alice@example.com", Username: "alice", Password: "password123"})

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Username: "other", Password: "password123"})
	assertCode(t, err, apperr.ErrConflict)
	_, err = svc.Register(ctx, RegisterInput{Email: "other@example.com", Username: "alice", Password: "password123"})
	assertCode(t, err, apperr.ErrConflict)
}

func TestMeMissingUser(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Me(context.Background(), auth.AuthContext{UserID: "ghost"})
	assertCode(t, err, apperr.ErrNotFound)
}
