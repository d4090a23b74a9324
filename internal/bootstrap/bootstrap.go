// Package bootstrap opens the external connections a binary needs and
// publishes them through the container.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/config"
	"github.com/oksasatya/go-qkart-backend/internal/container"
	mongoinfra "github.com/oksasatya/go-qkart-backend/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-qkart-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

// Options toggles the optional clients.
type Options struct {
	Migrate bool // run postgres migrations after connecting
	Redis   bool
	Rabbit  bool
}

// Connect fills the container for cfg. The returned closer releases everything that was opened,
// including on error.
func Connect(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opt Options) (func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	container.SetConfig(cfg)
	container.SetLogger(logger)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return closeAll, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		if opt.Migrate {
			if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				return closeAll, fmt.Errorf("migrate: %w", err)
			}
		}
		container.SetPGPool(pool)
	case config.StoreMongo:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return closeAll, fmt.Errorf("connect mongo: %w", err)
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.MongoDatabase)
		if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
			return closeAll, fmt.Errorf("mongo indexes: %w", err)
		}
		container.SetMongoDB(db)
	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
	default:
		return closeAll, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if opt.Redis {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// sessions and rate limits are skipped without redis
			logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unavailable; continuing without sessions")
			_ = rdb.Close()
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			container.SetRedis(rdb)
		}
	}

	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL))

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		return closeAll, fmt.Errorf("elasticsearch client: %w", err)
	}
	container.SetES(es)

	if opt.Rabbit && cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails will not be queued")
		} else {
			closers = append(closers, pub.Close)
			container.SetRabbitPub(pub)
		}
	}
	return closeAll, nil
}
