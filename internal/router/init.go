package router

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/config"
	"github.com/oksasatya/go-qkart-backend/internal/application"
	"github.com/oksasatya/go-qkart-backend/internal/container"
	"github.com/oksasatya/go-qkart-backend/internal/domain/repository"
	"github.com/oksasatya/go-qkart-backend/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/go-qkart-backend/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-qkart-backend/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-qkart-backend/internal/interface/http"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
	"github.com/oksasatya/go-qkart-backend/internal/router/modules"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

// Stores groups the repositories of one driver.
type Stores struct {
	Users    repository.UserRepository
	Carts    repository.CartRepository
	Products repository.ProductRepository
}

// NewStores picks repositories for cfg.StoreDriver from the container's connections.
func NewStores(cfg *config.Config) (Stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool := container.GetPGPool()
		if pool == nil {
			return Stores{}, fmt.Errorf("postgres store selected but no pool is configured")
		}
		return Stores{
			Users:    pginfra.NewUserRepository(pool),
			Carts:    pginfra.NewCartRepository(pool),
			Products: pginfra.NewProductRepository(pool),
		}, nil
	case config.StoreMongo:
		db := container.GetMongoDB()
		if db == nil {
			return Stores{}, fmt.Errorf("mongo store selected but no database is configured")
		}
		return Stores{
			Users:    mongoinfra.NewUserRepository(db),
			Carts:    mongoinfra.NewCartRepository(db),
			Products: mongoinfra.NewProductRepository(db),
		}, nil
	case config.StoreMemory:
		return Stores{
			Users:    memory.NewUserRepository(),
			Carts:    memory.NewCartRepository(),
			Products: memory.NewProductRepository(),
		}, nil
	default:
		return Stores{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// Deps is everything the HTTP modules need.
type Deps struct {
	Config *config.Config
	Logger *logrus.Logger
	Stores Stores
	Redis  *redis.Client // optional
	JWT    *helpers.JWTManager
	ES     *elasticsearch.Client // optional
	Mail   application.Publisher // optional
}

// Services builds the application layer from d.
type Services struct {
	Users    *application.UserService
	Auth     *application.AuthService
	Tokens   *application.TokenService
	Carts    *application.CartService
	Products *application.ProductService
}

func NewServices(d Deps) Services {
	cfg := d.Config
	hasher := helpers.NewBcryptHasher(cfg.BcryptCost)
	notifier := application.NewNotifier(d.Mail, d.Logger)

	users := application.NewUserService(d.Stores.Users, hasher, application.UserDefaults{
		WalletMoney: cfg.DefaultWalletMoney,
		Address:     cfg.DefaultAddress,
	}, notifier, d.Logger)

	return Services{
		Users:    users,
		Auth:     application.NewAuthService(users, hasher),
		Tokens:   application.NewTokenService(d.JWT, d.Redis, d.Logger),
		Carts:    application.NewCartService(d.Stores.Carts, d.Stores.Products, cfg.DefaultPaymentOption, d.Logger),
		Products: application.NewProductService(d.Stores.Products, d.ES, cfg.ESProductsIndex, d.Logger),
	}
}

// Mount registers every module on r and returns the services behind them.
func Mount(r *Registry, d Deps) Services {
	cfg := d.Config
	svc := NewServices(d)

	var limiter *redis.Client
	if cfg.RateLimitEnabled {
		limiter = d.Redis
	}
	guard := middleware.Auth(d.Redis, d.JWT)
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, svc.Auth, svc.Tokens, cookies, d.Logger), guard, limiter),
		modules.NewUserModule(handlers.NewUserHandler(svc.Users, d.Logger), guard, limiter),
		modules.NewProductModule(handlers.NewProductHandler(svc.Products, d.Logger), limiter),
		modules.NewCartModule(handlers.NewCartHandler(svc.Users, svc.Carts, d.Logger), guard, limiter),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
	return svc
}

// InitModules initializes all application modules from the container and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) (Services, error) {
	cfg := container.GetConfig()
	stores, err := NewStores(cfg)
	if err != nil {
		return Services{}, err
	}

	d := Deps{
		Config: cfg,
		Logger: container.GetLogger(),
		Stores: stores,
		Redis:  container.GetRedis(),
		JWT:    container.GetJWT(),
		ES:     container.GetES(),
	}
	// a nil *RabbitPublisher must not become a non-nil interface
	if pub := container.GetRabbitPub(); pub != nil {
		d.Mail = pub
	}
	return Mount(r, d), nil
}
