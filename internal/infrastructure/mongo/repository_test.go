package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/domain/repository"
)

func TestRepositories(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("Skipping MongoDB repository test: MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, uri)
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database("qkart_test_" + uuid.NewString()[:8])
	defer func() { _ = db.Drop(ctx) }()
	require.NoError(t, EnsureIndexes(ctx, db))

	users := NewUserRepository(db)
	carts := NewCartRepository(db)
	products := NewProductRepository(db)

	t.Run("users", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		u := &entity.User{Name: "Rohin", Email: "rohin@x.com", Password: "hash", WalletMoney: 500, Address: "ADDRESS_NOT_SET", CreatedAt: now, UpdatedAt: now}
		require.NoError(t, users.Create(ctx, u))
		require.NotEmpty(t, u.ID)

		assert.ErrorIs(t, users.Create(ctx, &entity.User{Email: "rohin@x.com"}), repository.ErrDuplicateEmail)

		got, err := users.GetByEmail(ctx, "rohin@x.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)

		got.Address = "221B Baker Street, London"
		require.NoError(t, users.Update(ctx, got))

		addr, err := users.GetAddressByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "221B Baker Street, London", addr.Address)

		ghost := *got
		ghost.ID = "000000000000000000000000"
		ghost.Email = "ghost@x.com"
		assert.ErrorIs(t, users.Update(ctx, &ghost), repository.ErrUserNotFound)

		missing, err := users.GetByID(ctx, "not-an-object-id")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("carts and products", func(t *testing.T) {
		p := &entity.Product{ID: "BW0jAAeDJmlZCF8i", Name: "iPad", Category: "Electronics", Cost: 900, Rating: 5}
		require.NoError(t, products.Upsert(ctx, p))

		list, err := products.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		c := entity.NewCart("rohin@x.com", "PAYMENT_OPTION_DEFAULT", entity.CartItem{Product: *p, Quantity: 1})
		require.NoError(t, carts.Create(ctx, c))

		c.SetQuantity(p.ID, 3)
		require.NoError(t, carts.Save(ctx, c))

		got, err := carts.GetByEmail(ctx, "rohin@x.com")
		require.NoError(t, err)
		require.Len(t, got.CartItems, 1)
		assert.Equal(t, 3, got.CartItems[0].Quantity)
		assert.Equal(t, "iPad", got.CartItems[0].Product.Name)
	})
}
