package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-qkart-backend/internal/application"
	"github.com/oksasatya/go-qkart-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

func TestLoadProductsFromRepoSeed(t *testing.T) {
	ps, err := LoadProducts(filepath.Join("..", "..", "db", "seed", "products.json"))
	require.NoError(t, err)
	require.NotEmpty(t, ps)
	for _, p := range ps {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.Positive(t, p.Cost)
	}
}

func TestLoadProductsRejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"x"}]`), 0o600))
	_, err := LoadProducts(path)
	assert.Error(t, err)
}

func TestRunIsIdempotent(t *testing.T) {
	logger := helpers.NewNopLogger()
	productRepo := memory.NewProductRepository()
	userRepo := memory.NewUserRepository()
	products := application.NewProductService(productRepo, nil, "products", logger)
	users := application.NewUserService(userRepo, helpers.NewBcryptHasher(bcrypt.MinCost),
		application.UserDefaults{WalletMoney: 500, Address: "ADDRESS_NOT_SET"}, nil, logger)

	ps, err := LoadProducts(filepath.Join("..", "..", "db", "seed", "products.json"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Run(ctx, products, users, ps, logger))
	require.NoError(t, Run(ctx, products, users, ps, logger))

	all, err := productRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(ps))

	u, err := users.GetUserByEmail(ctx, DemoUser.Email)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, DemoUser.Password, u.Password)
}
