package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
)

// ErrDuplicateEmail is returned when a write violates the unique email index.
var ErrDuplicateEmail = errors.New("duplicate email")

// ErrUserNotFound is returned by Update when no user has the given id.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when nothing matches; Update returns ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAddressByID(ctx context.Context, id string) (*entity.UserAddress, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
}
