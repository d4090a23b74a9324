package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-qkart-backend/internal/interface/http"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
)

// UserModule wires the profile endpoints. Every route requires a valid access token.
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   gin.HandlerFunc
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, guard gin.HandlerFunc, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Guard: guard, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Guard, middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		users.GET("/:userId", m.Handler.GetUser)
		users.PUT("/:userId", m.Handler.SetAddress)
	}
}
