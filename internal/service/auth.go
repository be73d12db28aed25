package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/dishly/internal/apperr"
	"github.com/dukerupert/dishly/internal/auth"
	"github.com/dukerupert/dishly/internal/model"
	"github.com/dukerupert/dishly/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	// Identifier is an email address or a username.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

type AuthService struct {
	users      *store.UserStore
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *slog.Logger
}

func NewAuthService(users *store.UserStore, tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.With("component", "auth"),
	}
}

// SetBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func (s *AuthService) SetBcryptCost(cost int) {
	s.bcryptCost = cost
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	emailTaken, usernameTaken, err := s.users.Exists(email, username)
	if err != nil {
		return nil, apperr.Internal("failed to check user", err)
	}
	if emailTaken {
		return nil, apperr.Conflict("email is already registered")
	}
	if usernameTaken {
		return nil, apperr.Conflict("username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	u, err := s.users.Create(email, username, strings.TrimSpace(in.Name), string(hash))
	if err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	return s.issue(u)
}

// Login authenticates by email or username. Unknown users and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(in.Identifier)

	var u *model.User
	var err error
	if strings.Contains(id, "@") {
		u, err = s.users.GetByEmail(strings.ToLower(id))
	} else {
		u, err = s.users.GetByUsername(id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if u == nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		s.logger.Debug("login failed", "user_id", u.ID)
		return nil, apperr.Unauthorized("invalid credentials")
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return s.issue(u)
}

func (s *AuthService) Me(ctx context.Context, caller auth.AuthContext) (*model.User, error) {
	u, err := s.users.GetByID(caller.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *AuthService) issue(u *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.TTL()),
		User:      u,
	}, nil
}
