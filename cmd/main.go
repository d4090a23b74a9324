package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/config"
	"github.com/oksasatya/go-qkart-backend/internal/bootstrap"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
	"github.com/oksasatya/go-qkart-backend/internal/router"
	"github.com/oksasatya/go-qkart-backend/internal/seed"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
	"github.com/oksasatya/go-qkart-backend/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	closeAll, err := bootstrap.Connect(ctx, cfg, logger, bootstrap.Options{Migrate: true, Redis: true, Rabbit: true})
	defer closeAll()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	reg := router.NewRegistry(r)
	svc, err := router.InitModules(reg)
	if err != nil {
		log.Fatalf("failed to init modules: %v", err)
	}
	reg.RegisterAll()

	if cfg.StoreDriver == config.StoreMemory {
		seedMemory(ctx, cfg, svc, logger)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s (store=%s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// seedMemory fills a fresh in-memory store so the catalog is usable in development.
func seedMemory(ctx context.Context, cfg *config.Config, svc router.Services, logger *logrus.Logger) {
	ps, err := seed.LoadProducts(cfg.SeedFile)
	if err != nil {
		logger.WithError(err).Warn("memory store left empty")
		return
	}
	if err := seed.Run(ctx, svc.Products, svc.Users, ps, logger); err != nil {
		logger.WithError(err).Warn("memory seed failed")
	}
}
