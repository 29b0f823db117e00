package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/perkycoffee/perkyjump/internal/api"
	"github.com/perkycoffee/perkyjump/internal/bot"
	"github.com/perkycoffee/perkyjump/internal/config"
	"github.com/perkycoffee/perkyjump/internal/factory"
	redisstorage "github.com/perkycoffee/perkyjump/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	factoryCfg := factory.Config{
		StorageType: cfg.StorageType,
		SqlitePath:  cfg.SqlitePath,
		Logger:      logger,
	}

	if cfg.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Ledger:   app.Ledger,
		BotToken: cfg.BotToken,
	})

	// Combine routers: API, Telegram webhook, then the game's static files
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	// Wire the bot when a token is configured
	if cfg.BotToken != "" {
		gameBot, err := bot.New(cfg.BotToken, cfg.WebAppURL, app.Ledger, logger)
		if err != nil {
			logger.Error("failed to create bot", slog.String("error", err.Error()))
			os.Exit(1)
		}

		// Telegram can only know the webhook path via the secret token
		webhookPath := fmt.Sprintf("/telegram/%s", cfg.BotToken)
		mux.Handle("POST "+webhookPath, gameBot.WebhookHandler())

		if cfg.WebhookURL != "" {
			if err := gameBot.RegisterWebhook(cfg.WebhookURL + webhookPath); err != nil {
				logger.Error("failed to register webhook", slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Info("telegram webhook registered")
		}
	} else {
		logger.Warn("BOT_TOKEN not set, running without the Telegram bot")
	}

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.Int("port", cfg.Port))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
