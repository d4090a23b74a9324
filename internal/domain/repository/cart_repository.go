package repository

import (
	"context"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
)

// CartRepository stores one cart document per email.
type CartRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.Cart, error)
	Create(ctx context.Context, c *entity.Cart) error
	Save(ctx context.Context, c *entity.Cart) error
}
