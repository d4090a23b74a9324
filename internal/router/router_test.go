package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-qkart-backend/config"
	"github.com/oksasatya/go-qkart-backend/internal/domain/entity"
	"github.com/oksasatya/go-qkart-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-qkart-backend/internal/interface/middleware"
	"github.com/oksasatya/go-qkart-backend/pkg/helpers"
	"github.com/oksasatya/go-qkart-backend/pkg/validation"
)

var catalog = []entity.Product{
	{ID: "BW0jAAeDJmlZCF8i", Name: "Apple iPad Pro with Pencil", Category: "Electronics", Cost: 900, Rating: 5},
	{ID: "KCRwjF7lN97HnEaY", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4},
	{ID: "PmInA797xJhMIPti", Name: "Alarm Clock", Category: "Home & Kitchen", Cost: 30, Rating: 3},
}

type apiClient struct {
	t *testing.T
	h http.Handler
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		BcryptCost:           bcrypt.MinCost,
		DefaultWalletMoney:   500,
		DefaultAddress:       "ADDRESS_NOT_SET",
		DefaultPaymentOption: "PAYMENT_OPTION_DEFAULT",
		ESProductsIndex:      "products",
		DebugMetricsEnabled:  true,
		RateLimitEnabled:     true,
	}
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(r)
	Mount(reg, Deps{
		Config: cfg,
		Logger: helpers.NewNopLogger(),
		Stores: Stores{
			Users:    memory.NewUserRepository(),
			Carts:    memory.NewCartRepository(),
			Products: memory.NewProductRepository(catalog...),
		},
		JWT: helpers.NewJWTManager("router-test-secret", time.Hour),
	})
	reg.RegisterAll()
	return &apiClient{t: t, h: r}
}

func (a *apiClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, APIPrefix+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	return w
}

type authBody struct {
	User   map[string]any `json:"user"`
	Tokens struct {
		Access struct {
			Token   string    `json:"token"`
			Expires time.Time `json:"expires"`
		} `json:"access"`
	} `json:"tokens"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *apiClient) register(name, email, password string) authBody {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", "", gin.H{"name": name, "email": email, "password": password})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[authBody](a.t, w)
}

func TestRegisterRohin(t *testing.T) {
	api := newAPI(t)
	w := api.do(http.MethodPost, "/auth/register", "", gin.H{"name": "Rohin", "email": "rohin@x.com", "password": "abc123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode[authBody](t, w)
	assert.Equal(t, "rohin@x.com", body.User["email"])
	assert.NotEmpty(t, body.Tokens.Access.Token)
	assert.True(t, body.Tokens.Access.Expires.After(time.Now()))
	assert.NotContains(t, body.User, "password")
	assert.NotContains(t, w.Body.String(), "abc123")
	assert.Equal(t, 500.0, body.User["walletMoney"])

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.AccessTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
}

func TestRegisterErrors(t *testing.T) {
	api := newAPI(t)
	api.register("Rohin", "rohin@x.com", "abc123")

	w := api.do(http.MethodPost, "/auth/register", "", gin.H{"name": "Again", "email": "rohin@x.com", "password": "abc123"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already taken")

	w = api.do(http.MethodPost, "/auth/register", "", gin.H{"name": "Weak", "email": "weak@x.com", "password": "abcdef"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode[map[string]any](t, w)
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["error"], "password")

	w = api.do(http.MethodPost, "/auth/register", "", gin.H{"name": "Long", "email": "long@x.com", "password": "a1" + strings.Repeat("x", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env = decode[map[string]any](t, w)
	assert.Contains(t, env["error"], "password")

	w = api.do(http.MethodPost, "/auth/register", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	api := newAPI(t)
	reg := api.register("Rohin", "rohin@x.com", "abc123")

	w := api.do(http.MethodPost, "/auth/login", "", gin.H{"email": "rohin@x.com", "password": "abc123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[authBody](t, w)
	assert.Equal(t, reg.User["_id"], body.User["_id"])
	assert.NotEmpty(t, body.Tokens.Access.Token)

	for _, creds := range []gin.H{
		{"email": "rohin@x.com", "password": "wrong1"},
		{"email": "ghost@x.com", "password": "abc123"},
	} {
		w := api.do(http.MethodPost, "/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Incorrect email or password")
		assert.NotContains(t, w.Body.String(), "token")
	}

	w = api.do(http.MethodPost, "/auth/logout", body.Tokens.Access.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	api := newAPI(t)
	rohin := api.register("Rohin", "rohin@x.com", "abc123")
	asha := api.register("Asha", "asha@x.com", "abc123")
	id := rohin.User["_id"].(string)
	token := rohin.Tokens.Access.Token

	w := api.do(http.MethodGet, "/users/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rohin@x.com", decode[map[string]any](t, w)["email"])

	w = api.do(http.MethodGet, "/users/"+id+"?q=address", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"address": "ADDRESS_NOT_SET"}, decode[map[string]any](t, w))

	w = api.do(http.MethodGet, "/users/"+asha.User["_id"].(string), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User not authorized to access this resource")

	w = api.do(http.MethodGet, "/users/does-not-exist", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/users/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPut, "/users/"+id, token, gin.H{"address": "too short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	addr := "221B Baker Street, London NW1 6XE"
	w = api.do(http.MethodPut, "/users/"+id, token, gin.H{"address": addr})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, addr, decode[map[string]any](t, w)["address"])

	w = api.do(http.MethodGet, "/users/"+id+"?q=address", token, nil)
	assert.Equal(t, addr, decode[map[string]any](t, w)["address"])

	// password still works after the address update
	w = api.do(http.MethodPost, "/auth/login", "", gin.H{"email": "rohin@x.com", "password": "abc123"})
	assert.Equal(t, http.StatusOK, w.Code)
}

type cartBody struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	CartItems []struct {
		Product  entity.Product `json:"product"`
		Quantity int            `json:"quantity"`
	} `json:"cartItems"`
	PaymentOption string `json:"paymentOption"`
}

func TestCartFlow(t *testing.T) {
	api := newAPI(t)
	token := api.register("Rohin", "rohin@x.com", "abc123").Tokens.Access.Token
	ipad, duffle, clock := catalog[0].ID, catalog[1].ID, catalog[2].ID

	w := api.do(http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPost, "/cart", token, gin.H{"productId": ipad, "quantity": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cart := decode[cartBody](t, w)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, ipad, cart.CartItems[0].Product.ID)
	assert.Equal(t, "PAYMENT_OPTION_DEFAULT", cart.PaymentOption)

	w = api.do(http.MethodPost, "/cart", token, gin.H{"productId": ipad, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/cart", token, gin.H{"productId": "missing", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product doesn't exist in database")

	w = api.do(http.MethodPost, "/cart", token, gin.H{"productId": duffle, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, id := range []string{duffle, clock} {
		w = api.do(http.MethodPost, "/cart", token, gin.H{"productId": id, "quantity": 1})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = api.do(http.MethodPut, "/cart", token, gin.H{"productId": duffle, "quantity": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cart = decode[cartBody](t, w)
	require.Len(t, cart.CartItems, 3)
	assert.Equal(t, 1, cart.CartItems[0].Quantity)
	assert.Equal(t, 4, cart.CartItems[1].Quantity)

	w = api.do(http.MethodPut, "/cart", token, gin.H{"productId": duffle, "quantity": 0})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodPut, "/cart", token, gin.H{"productId": duffle})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodDelete, "/cart", token, gin.H{"productId": ipad})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodDelete, "/cart/"+ipad, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product not in cart")

	w = api.do(http.MethodDelete, "/cart/"+clock, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[cartBody](t, w).CartItems)

	w = api.do(http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductEndpoints(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]entity.Product](t, w), len(catalog))

	w = api.do(http.MethodGet, "/products/"+catalog[2].ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, catalog[2], decode[entity.Product](t, w))

	w = api.do(http.MethodGet, "/products/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/products/search?value=fashion", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]entity.Product](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, catalog[1].ID, found[0].ID)
}

func TestDebugVars(t *testing.T) {
	api := newAPI(t)
	api.register("Rohin", "rohin@x.com", "abc123")
	w := api.do(http.MethodGet, "/debug/vars", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_registrations")
	assert.Contains(t, w.Body.String(), "cart_operations")
}

func TestNewStoresRejectsUnknownDriver(t *testing.T) {
	_, err := NewStores(&config.Config{StoreDriver: "sqlite"})
	assert.Error(t, err)

	s, err := NewStores(&config.Config{StoreDriver: config.StoreMemory})
	require.NoError(t, err)
	assert.NotNil(t, s.Users)

	_, err = NewStores(&config.Config{StoreDriver: config.StorePostgres})
	assert.Error(t, err)
}
