package repository

import (
	"context"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
)

// ProductRepository reads the catalog. Upsert is only used by the seeder.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Upsert(ctx context.Context, p *entity.Product) error
}
