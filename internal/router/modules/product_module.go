package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-qkart-backend/internal/interface/http"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
)

// ProductModule exposes the public catalog.
type ProductModule struct {
	Handler *handlers.ProductHandler
	RDB     *redis.Client
}

func NewProductModule(h *handlers.ProductHandler, rdb *redis.Client) *ProductModule {
	return &ProductModule{Handler: h, RDB: rdb}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP(), nil)

	products := rg.Group("/products")
	products.GET("", m.Handler.List)
	products.GET("/search", searchLimiter, m.Handler.Search)
	products.GET("/:productId", m.Handler.Get)
}
