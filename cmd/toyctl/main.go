package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ramatoys/storefront/cmd/toyctl/cli"
	"github.com/ramatoys/storefront/internal/app"
	"github.com/ramatoys/storefront/internal/platform/cache"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping toyctl")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(openRuntime).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "toyctl:", err)
		os.Exit(1)
	}
}

func openRuntime(ctx context.Context) (*cli.Runtime, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	s, closeStore, err := app.OpenStore(ctx, cfg, redisClient, logger)
	if err != nil {
		_ = redisClient.Close()
		return nil, err
	}
	return &cli.Runtime{
		Store:           s,
		RedisAddr:       cfg.RedisAddr,
		BackupRetention: cfg.BackupRetention,
		Logger:          logger,
		Close: func() {
			closeStore()
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		},
	}, nil
}
