package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/application"
	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
	"github.com/oksasatya/go-qkart-backend/pkg/response"
)

// SessionIssuer issues token bundles and revokes the session behind them.
type SessionIssuer interface {
	application.TokenIssuer
	RevokeSession(ctx context.Context, userID string) error
}

type AuthHandler struct {
	Users   *application.UserService
	Auth    *application.AuthService
	Tokens  SessionIssuer
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(users *application.UserService, auth *application.AuthService, tokens SessionIssuer, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Auth: auth, Tokens: tokens, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72,password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User   *entity.User           `json:"user"`
	Tokens application.AuthTokens `json:"tokens"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	u, err := h.Users.CreateUser(ctx, application.CreateUserInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.issue(c, http.StatusCreated, u)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Auth.LoginUserWithEmailAndPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.issue(c, http.StatusOK, u)
}

func (h *AuthHandler) issue(c *gin.Context, status int, u *entity.User) {
	tokens, err := h.Tokens.GenerateAuthTokens(c.Request.Context(), u)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.SetAccess(c, tokens.Access.Token, tokens.Access.Expires)
	}
	c.JSON(status, authResponse{User: u, Tokens: tokens})
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Tokens.RevokeSession(c.Request.Context(), uid); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.Clear(c)
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
