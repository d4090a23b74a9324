package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/domain/repository"
)

// CartRepository keeps line items as an embedded JSONB document per cart row.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) GetByEmail(ctx context.Context, email string) (*entity.Cart, error) {
	c := &entity.Cart{}
	var items []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, cart_items, payment_option
		FROM carts
		WHERE email = $1
	`, email).Scan(&c.ID, &c.Email, &items, &c.PaymentOption)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &c.CartItems); err != nil {
		return nil, err
	}
	if c.CartItems == nil {
		c.CartItems = []entity.CartItem{}
	}
	return c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *entity.Cart) error {
	items, err := marshalItems(c.CartItems)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO carts (email, cart_items, payment_option)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.Email, items, c.PaymentOption)
	return mapWriteErr(row.Scan(&c.ID))
}

func (r *CartRepository) Save(ctx context.Context, c *entity.Cart) error {
	items, err := marshalItems(c.CartItems)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE carts SET cart_items = $1, payment_option = $2 WHERE email = $3
	`, items, c.PaymentOption, c.Email)
	return err
}

func marshalItems(items []entity.CartItem) ([]byte, error) {
	if items == nil {
		items = []entity.CartItem{}
	}
	return json.Marshal(items)
}

var _ repository.CartRepository = (*CartRepository)(nil)
