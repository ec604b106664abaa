package repository

import (
	"errors"

	"github.com/cineview/backend/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Create when the email already has an
	// account. The store enforces this with a unique index, so a second
	// create with the same email fails deterministically.
	ErrEmailTaken = errors.New("email already in use")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
}
