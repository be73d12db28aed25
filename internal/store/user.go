package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/dishly/internal/model"
	"github.com/google/uuid"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Email, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, email, username, name, password_hash, created_at`

func (s *UserStore) Create(email, username, name, passwordHash string) (*model.User, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, username, name, password_hash) VALUES (?, ?, ?, ?, ?)`,
		id, email, username, name, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id string) (*model.User, error) {
	return s.getBy("id", id)
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	return s.getBy("email", email)
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	return s.getBy("username", username)
}

// getBy looks a user up by a unique column. col is never user input.
func (s *UserStore) getBy(col, value string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE `+col+` = ?`, value)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", col, err)
	}
	return u, nil
}

// Exists reports whether the email or username is already taken.
func (s *UserStore) Exists(email, username string) (emailTaken, usernameTaken bool, err error) {
	err = s.db.QueryRow(
		`SELECT
			EXISTS (SELECT 1 FROM users WHERE email = ?),
			EXISTS (SELECT 1 FROM users WHERE username = ?)`,
		email, username,
	).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return false, false, fmt.Errorf("check user exists: %w", err)
	}
	return emailTaken, usernameTaken, nil
}
