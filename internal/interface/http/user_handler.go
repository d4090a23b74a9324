package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/application"
	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
	"github.com/oksasatya/go-qkart-backend/pkg/apperror"
)

var (
	errUnauthenticated = apperror.Unauthorized("Please authenticate")
	errUserNotFound    = apperror.NotFound("User not found")
	errNotOwner        = apperror.Forbidden("User not authorized to access this resource")
)

// currentUser loads the account behind the access token; a deleted account is treated as unauthenticated.
func currentUser(c *gin.Context, users *application.UserService) (*entity.User, error) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if uid == "" {
		return nil, errUnauthenticated
	}
	u, err := users.GetUserByID(c.Request.Context(), uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUnauthenticated
	}
	return u, nil
}

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type setAddressRequest struct {
	Address string `json:"address" binding:"required,min=20"`
}

// target resolves :userId and checks it belongs to the caller.
func (h *UserHandler) target(c *gin.Context) (*entity.User, bool) {
	me, err := currentUser(c, h.Users)
	if err != nil {
		writeError(c, h.Logger, err)
		return nil, false
	}
	u, err := h.Users.GetUserByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return nil, false
	}
	if u == nil {
		writeError(c, h.Logger, errUserNotFound)
		return nil, false
	}
	if u.Email != me.Email {
		writeError(c, h.Logger, errNotOwner)
		return nil, false
	}
	return u, true
}

// GetUser GET /users/:userId, or only the address with ?q=address
func (h *UserHandler) GetUser(c *gin.Context) {
	u, ok := h.target(c)
	if !ok {
		return
	}
	if c.Query("q") == "address" {
		a, err := h.Users.GetUserAddressByID(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		if a == nil {
			writeError(c, h.Logger, errUserNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"address": a.Address})
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetAddress PUT /users/:userId
func (h *UserHandler) SetAddress(c *gin.Context) {
	u, ok := h.target(c)
	if !ok {
		return
	}
	var req setAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	addr, err := h.Users.SetAddress(c.Request.Context(), u, req.Address)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr})
}
