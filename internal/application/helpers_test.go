package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

var (
	ipad   = entity.Product{ID: "BW0jAAeDJmlZCF8i", Name: "Apple iPad Pro with Pencil", Category: "Electronics", Cost: 900, Rating: 5}
	duffle = entity.Product{ID: "KCRwjF7lN97HnEaY", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4}
	clock  = entity.Product{ID: "PmInA797xJhMIPti", Name: "Alarm Clock", Category: "Home & Kitchen", Cost: 30, Rating: 3}
)

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return p.err
}

type fixture struct {
	users    *memory.UserRepository
	carts    *memory.CartRepository
	products *memory.ProductRepository
	pub      *recordingPublisher
	hasher   *helpers.BcryptHasher

	userSvc    *UserService
	authSvc    *AuthService
	cartSvc    *CartService
	productSvc *ProductService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserRepository(),
		carts:    memory.NewCartRepository(),
		products: memory.NewProductRepository(ipad, duffle, clock),
		pub:      &recordingPublisher{},
		hasher:   helpers.NewBcryptHasher(bcrypt.MinCost),
	}
	logger := helpers.NewNopLogger()
	f.userSvc = NewUserService(f.users, f.hasher, UserDefaults{WalletMoney: 500, Address: "ADDRESS_NOT_SET"}, NewNotifier(f.pub, logger), logger)
	f.authSvc = NewAuthService(f.userSvc, f.hasher)
	f.cartSvc = NewCartService(f.carts, f.products, "PAYMENT_OPTION_DEFAULT", logger)
	f.productSvc = NewProductService(f.products, nil, "products", logger)
	return f
}

func (f *fixture) register(t *testing.T, name, email, password string) *entity.User {
	t.Helper()
	u, err := f.userSvc.CreateUser(context.Background(), CreateUserInput{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return u
}
