package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DEFAULT_WALLET_MONEY", "")

	cfg := Load()

	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, float64(500), cfg.DefaultWalletMoney)
	assert.Equal(t, "ADDRESS_NOT_SET", cfg.DefaultAddress)
	assert.Equal(t, "PAYMENT_OPTION_DEFAULT", cfg.DefaultPaymentOption)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.MailSendEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("DEFAULT_WALLET_MONEY", "1200.5")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()

	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 1200.5, cfg.DefaultWalletMoney)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	t.Setenv("DEFAULT_WALLET_MONEY", "-3")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, 240*time.Minute, cfg.AccessTTL)
	assert.Equal(t, float64(500), cfg.DefaultWalletMoney)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestCSVHelpers(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test", ElasticsearchAddrs: ""}

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "qkart", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/qkart?sslmode=disable", cfg.PostgresDSN())
}
