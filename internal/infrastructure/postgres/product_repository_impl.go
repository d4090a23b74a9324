package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p := &entity.Product{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, category, cost, rating, image FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, category, cost, rating, image FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Product{}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.Image); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Upsert(ctx context.Context, p *entity.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, category, cost, rating, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, category = EXCLUDED.category, cost = EXCLUDED.cost,
		    rating = EXCLUDED.rating, image = EXCLUDED.image
	`, p.ID, p.Name, p.Category, p.Cost, p.Rating, p.Image)
	return err
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
