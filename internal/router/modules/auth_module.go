package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-qkart-backend/internal/interface/http"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
)

// AuthModule serves /auth/register, /auth/login and /auth/logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   gin.HandlerFunc
	RDB     *redis.Client // nil disables rate limiting
}

func NewAuthModule(h *handlers.AuthHandler, guard gin.HandlerFunc, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Guard: guard, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/logout", m.Guard, m.Handler.Logout)
}
