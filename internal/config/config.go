package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// DSN - строка подключения к postgres
func (c DBConfig) DSN() string {
	return "host=" + c.Host + " user=" + c.User + " password=" + c.Password +
		" dbname=" + c.Name + " port=" + c.Port + " sslmode=disable"
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PaymentConfig struct {
	ProviderToken string
	Currency      string
}

type Config struct {
	BotToken      string
	WebhookURL    string
	ListenAddress string
	DB            DBConfig
	Redis         RedisConfig
	Payment       PaymentConfig
	CurrencyValue decimal.Decimal
	AdminIDs      []int64
	QuickCheckout bool
	SeedData      bool
	LogLevel      slog.Level
}

func Load() (Config, error) {
	cfg := Config{
		BotToken:      getEnv("BOT_TOKEN", ""),
		WebhookURL:    getEnv("BOT_URL", ""),
		ListenAddress: getEnv("LISTEN_ADDRESS", ":8080"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "coffee_bot"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Payment: PaymentConfig{
			ProviderToken: getEnv("PAYMENT_PROVIDER_TOKEN", ""),
			Currency:      getEnv("PAYMENT_CURRENCY", "UZS"),
		},
		AdminIDs:      ParseIDs(getEnv("ADMIN_IDS", "")),
		QuickCheckout: getEnvAsBool("QUICK_CHECKOUT", true),
		SeedData:      getEnvAsBool("SEED_DATA", false),
	}

	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("BOT_TOKEN is required")
	}

	value, err := decimal.NewFromString(getEnv("CURRENCY_VALUE", "12500"))
	if err != nil || !value.IsPositive() {
		return Config{}, fmt.Errorf("CURRENCY_VALUE must be a positive number")
	}
	cfg.CurrencyValue = value

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// ParseIDs разбирает список id через запятую, некорректные значения пропускаются
func ParseIDs(value string) []int64 {
	var ids []int64
	for _, idStr := range strings.Split(value, ",") {
		idStr = strings.TrimSpace(idStr)
		if idStr == "" {
			continue
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
