package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-qkart-backend/internal/interface/http"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
)

type CartModule struct {
	Handler *handlers.CartHandler
	Guard   gin.HandlerFunc
	RDB     *redis.Client
}

func NewCartModule(h *handlers.CartHandler, guard gin.HandlerFunc, rdb *redis.Client) *CartModule {
	return &CartModule{Handler: h, Guard: guard, RDB: rdb}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.Use(m.Guard, middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		cart.GET("", m.Handler.GetCart)
		cart.POST("", m.Handler.AddProduct)
		cart.PUT("", m.Handler.UpdateProduct)
		cart.DELETE("", m.Handler.RemoveProduct)
		cart.DELETE("/:productId", m.Handler.RemoveProduct)
	}
}
