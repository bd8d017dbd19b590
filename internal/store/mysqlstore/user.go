package mysqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentacar/internal/models"
	"rentacar/internal/store"
)

type UserStore struct {
	DB *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{DB: db}
}

func (s *UserStore) Register(ctx context.Context, user *models.User) error {
	var usernameTaken, emailTaken bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", user.Username,
	).Scan(&usernameTaken)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	err = s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", user.Email,
	).Scan(&emailTaken)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if usernameTaken {
		return store.ErrDuplicateUsername
	}
	if emailTaken {
		return store.ErrDuplicateEmail
	}

	user.CreatedDate = time.Now().UTC()
	result, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (full_name, username, email, password_hash, created_date) VALUES (?, ?, ?, ?, ?)",
		user.FullName, user.Username, user.Email, user.PasswordHash, user.CreatedDate,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID, _ = result.LastInsertId()
	return nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx,
		"SELECT id, full_name, username, email, password_hash, created_date FROM users WHERE username = ?",
		username)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx,
		"SELECT id, full_name, username, email, password_hash, created_date FROM users WHERE email = ?",
		email)
}

func (s *UserStore) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	return s.findOne(ctx,
		"SELECT id, full_name, username, email, password_hash, created_date FROM users WHERE username = ? AND email = ?",
		username, email)
}

func (s *UserStore) findOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedDate)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result, err := s.DB.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE username = ?",
		passwordHash, username,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UserStore) RecordLogin(ctx context.Context, username, email string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO login_events (username, email, login_date) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE login_date = VALUES(login_date)`,
		username, email, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}
