package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffee_bot/auth"
	"coffee_bot/internal/config"
	"coffee_bot/internal/continuation"
	db "coffee_bot/internal/database"
	"coffee_bot/internal/gateway"
	"coffee_bot/internal/handlers"
	"coffee_bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
)

// сколько живёт незавершённый шаг диалога в redis
const continuationTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("bot_init_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "setwebhook" {
		if err := utils.SetWebhook(bot, cfg.WebhookURL); err != nil {
			logger.Error("set_webhook_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(cfg.WebhookURL)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, bot, logger); err != nil {
		logger.Error("bot_stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, bot *tgbotapi.BotAPI, logger *slog.Logger) error {
	gdb, err := db.Connect(cfg.DB.DSN())
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedData {
		if err := db.SeedTestData(ctx, gdb); err != nil {
			return err
		}
	}

	var steps continuation.Store = continuation.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		steps = continuation.NewRedisStore(client, continuationTTL)
	}

	router := handlers.NewRouter(handlers.Deps{
		Gateway:       gateway.NewTelegram(bot),
		Steps:         steps,
		Users:         db.NewUserService(gdb),
		Orders:        db.NewOrderService(gdb),
		Catalog:       db.NewCatalogService(gdb),
		Comments:      db.NewCommentService(gdb),
		Chats:         db.NewNotifyService(gdb),
		Settings:      db.NewSettingsService(gdb, cfg.CurrencyValue),
		Auth:          auth.New(cfg.AdminIDs),
		Payment:       cfg.Payment,
		QuickCheckout: cfg.QuickCheckout,
		Logger:        logger,
	})

	if cfg.WebhookURL != "" {
		return serveWebhook(ctx, cfg.ListenAddress, router, logger)
	}
	return poll(ctx, bot, router, logger)
}

func serveWebhook(ctx context.Context, addr string, router *handlers.Router, logger *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("webhook_server_started", slog.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func poll(ctx context.Context, bot *tgbotapi.BotAPI, router *handlers.Router, logger *slog.Logger) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	defer bot.StopReceivingUpdates()

	logger.Info("polling_started", slog.String("bot", bot.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			router.Process(ctx, update)
		}
	}
}
