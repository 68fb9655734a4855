package config

import (
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DB_HOST", "db")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ADMIN_IDS", "1, 2,abc,,3")
	t.Setenv("CURRENCY_VALUE", "12650.5")
	t.Setenv("QUICK_CHECKOUT", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AdminIDs)
	assert.True(t, cfg.CurrencyValue.Equal(decimal.RequireFromString("12650.5")))
	assert.False(t, cfg.QuickCheckout)
	assert.Equal(t, "UZS", cfg.Payment.Currency)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddress)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]struct {
		env           map[string]string
		expectedError string
	}{
		"missing token": {
			env:           map[string]string{"BOT_TOKEN": ""},
			expectedError: "BOT_TOKEN is required",
		},
		"invalid currency value": {
			env:           map[string]string{"BOT_TOKEN": "token", "CURRENCY_VALUE": "abc"},
			expectedError: "CURRENCY_VALUE must be a positive number",
		},
		"negative currency value": {
			env:           map[string]string{"BOT_TOKEN": "token", "CURRENCY_VALUE": "-1"},
			expectedError: "CURRENCY_VALUE must be a positive number",
		},
		"invalid log level": {
			env:           map[string]string{"BOT_TOKEN": "token", "LOG_LEVEL": "loud"},
			expectedError: "LOG_LEVEL",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.ErrorContains(t, err, tc.expectedError)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "h", User: "u", Password: "p", Name: "n", Port: "1"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable", c.DSN())
}
