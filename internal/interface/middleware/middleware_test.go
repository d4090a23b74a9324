package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":    c.GetString(CtxUserIDKey),
			"session": c.GetString(CtxSessionIDKey),
			"ip":      c.GetString("real_ip"),
			"req":     c.GetString("request_id"),
		})
	})
	return r
}

func TestAuthAcceptsBearerAndCookie(t *testing.T) {
	jwtm := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwtm.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	r := newEngine(Auth(nil, jwtm))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"user-1"`)
	assert.Contains(t, w.Body.String(), `"session":"sid-1"`)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejects(t *testing.T) {
	jwtm := helpers.NewJWTManager("secret", time.Hour)
	other := helpers.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.GenerateAccessToken("user-1", "sid")
	require.NoError(t, err)
	expired, _, err := (&helpers.JWTManager{AccessSecret: []byte("secret"), AccessTTL: -time.Minute}).GenerateAccessToken("user-1", "sid")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic abc"},
		{"bad signature", "Bearer " + forged},
		{"expired", "Bearer " + expired},
		{"garbage", "Bearer not.a.jwt"},
	}
	r := newEngine(Auth(nil, jwtm))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			assert.Contains(t, w.Body.String(), `"message":"Please authenticate"`)
			assert.NotContains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRealIP(t *testing.T) {
	r := newEngine(RealIP())
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"forwarded left-most", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"invalid header ignored", map[string]string{"CF-Connecting-IP": "nope"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Contains(t, w.Body.String(), `"ip":"`+tt.want+`"`)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))
	assert.Contains(t, w.Body.String(), given)
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestKeyFuncsAndAllowPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	c.Set("real_ip", "203.0.113.7")

	assert.Equal(t, "rl:ip:203.0.113.7", KeyByIP()(c))
	assert.Equal(t, "rl:path:/debug/vars:ip:203.0.113.7", KeyByIPAndPath()(c))
	assert.Equal(t, "rl:user:anon:ip:203.0.113.7", KeyByUserID()(c))
	c.Set(CtxUserIDKey, "u1")
	assert.Equal(t, "rl:user:u1", KeyByUserID()(c))

	assert.True(t, AllowPaths("/debug")(c))
	assert.False(t, AllowPaths("/api")(c))
	assert.Equal(t, 0, remaining(5, 7))
	assert.Equal(t, 3, remaining(5, 2))
}
