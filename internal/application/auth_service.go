package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/pkg/apperror"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

// ErrInvalidCredentials is deliberately the same for unknown emails and wrong passwords.
var ErrInvalidCredentials = apperror.Unauthorized("Incorrect email or password")

type AuthService struct {
	Users  *UserService
	Hasher entity.PasswordHasher
}

func NewAuthService(users *UserService, hasher entity.PasswordHasher) *AuthService {
	return &AuthService{Users: users, Hasher: hasher}
}

// LoginUserWithEmailAndPassword returns the user when the password matches its stored hash.
func (s *AuthService) LoginUserWithEmailAndPassword(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsPasswordMatch(s.Hasher, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

type TokenDetail struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is the bundle handed back after register and login.
type AuthTokens struct {
	Access TokenDetail `json:"access"`
}

// TokenIssuer produces signed session tokens for a user.
type TokenIssuer interface {
	GenerateAuthTokens(ctx context.Context, u *entity.User) (AuthTokens, error)
}

type TokenService struct {
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewTokenService(jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *TokenService {
	return &TokenService{JWT: jwt, Redis: rdb, Logger: logger}
}

// GenerateAuthTokens signs an access token and records its session id in Redis.
// A new login replaces the previous session of the same user.
func (s *TokenService) GenerateAuthTokens(ctx context.Context, u *entity.User) (AuthTokens, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID})
		return AuthTokens{}, fmt.Errorf("sign access token: %w", err)
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		if rErr := helpers.SaveSession(ctx, s.Redis, u.ID, fields, helpers.SessionTTL); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("user_id", u.ID).Warn("redis session write failed")
		}
	}

	return AuthTokens{Access: TokenDetail{Token: token, Expires: exp}}, nil
}

// RevokeSession drops the Redis session so outstanding tokens stop working.
func (s *TokenService) RevokeSession(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return helpers.DeleteSession(ctx, s.Redis, userID)
}

var _ TokenIssuer = (*TokenService)(nil)
