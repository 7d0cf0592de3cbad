package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freshnest-bot/internal/bot"
	"freshnest-bot/internal/bot/crm"
	"freshnest-bot/internal/config"
	"freshnest-bot/internal/storage"
	"freshnest-bot/pkg/api"
	"freshnest-bot/pkg/logger"
	"freshnest-bot/pkg/redis"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	if err := storage.RunMigrations(ctx, pgStorage.DB(), zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	apiClient := api.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.RequestTimeout, zapLogger)

	tgBot, err := bot.New(
		cfg.TelegramToken,
		apiClient,
		redisClient,
		pgStorage,
		cfg,
		zapLogger,
	)
	if err != nil {
		zapLogger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Backend callbacks land on a small HTTP server next to the poller.
	mux := http.NewServeMux()
	mux.Handle("/webhook", crm.NewHandler(pgStorage, tgBot, cfg.Webhook.Secret, zapLogger))
	srv := &http.Server{
		Addr:              cfg.Webhook.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLogger.Info("Webhook server listening", zap.String("addr", cfg.Webhook.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("Webhook server failed", zap.Error(err))
			cancel()
		}
	}()

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Error("Bot stopped with error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Warn("Webhook server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}
