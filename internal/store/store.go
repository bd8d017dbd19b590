package store

import (
	"context"
	"errors"

	"rentacar/internal/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrNotFound          = errors.New("not found")
)

// UserStore is the credential store. Both the MySQL and the Mongo backend
// implement it; handlers only ever see this interface.
type UserStore interface {
	// Register persists the user and fills in ID and CreatedDate. Both
	// duplicate checks run before the insert; a username collision wins
	// over an email collision when both apply.
	Register(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	// RecordLogin upserts the login event keyed by (username, email),
	// keeping the latest login date.
	RecordLogin(ctx context.Context, username, email string) error
}

type ListingStore interface {
	CreateListing(ctx context.Context, listing *models.CarListing) error
	// ListAll returns every listing; an empty store yields an empty
	// slice, never nil.
	ListAll(ctx context.Context) ([]models.CarListing, error)
}
