package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-qkart-backend/config"
	"github.com/oksasatya/go-qkart-backend/internal/bootstrap"
	"github.com/oksasatya/go-qkart-backend/internal/container"
	"github.com/oksasatya/go-qkart-backend/internal/router"
	"github.com/oksasatya/go-qkart-backend/internal/seed"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.StoreDriver == config.StoreMemory {
		log.Fatal("STORE_DRIVER=memory has nothing to seed; the API seeds itself on startup")
	}

	ctx := context.Background()
	closeAll, err := bootstrap.Connect(ctx, cfg, logger, bootstrap.Options{Migrate: true})
	defer closeAll()
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	stores, err := router.NewStores(cfg)
	if err != nil {
		log.Fatalf("stores: %v", err)
	}
	svc := router.NewServices(router.Deps{
		Config: cfg,
		Logger: logger,
		Stores: stores,
		JWT:    container.GetJWT(),
		ES:     container.GetES(),
	})

	ps, err := seed.LoadProducts(cfg.SeedFile)
	if err != nil {
		log.Fatalf("load %s: %v", cfg.SeedFile, err)
	}
	if err := seed.Run(ctx, svc.Products, svc.Users, ps, logger); err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger.Infof("seeded %d products into %s store (password for %s is %s)", len(ps), cfg.StoreDriver, seed.DemoUser.Email, seed.DemoUser.Password)
}
