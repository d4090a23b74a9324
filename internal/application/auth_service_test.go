package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-qkart-backend/pkg/apperror"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

func TestLoginUserWithEmailAndPassword(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "Rohin", "rohin@x.com", "abc123")
	ctx := context.Background()

	u, err := f.authSvc.LoginUserWithEmailAndPassword(ctx, "rohin@x.com", "abc123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "rohin@x.com", "abc124"},
		{"unknown email", "nobody@x.com", "abc123"},
		{"empty password", "rohin@x.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := f.authSvc.LoginUserWithEmailAndPassword(ctx, tt.email, tt.password)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
		})
	}
}

func TestGenerateAuthTokensWithoutRedis(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "Rohin", "rohin@x.com", "abc123")
	jwtm := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewTokenService(jwtm, nil, helpers.NewNopLogger())

	tokens, err := svc.GenerateAuthTokens(context.Background(), u)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Access.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tokens.Access.Expires, 5*time.Second)

	claims, err := jwtm.ParseAccessToken(tokens.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)

	assert.NoError(t, svc.RevokeSession(context.Background(), u.ID))
}
