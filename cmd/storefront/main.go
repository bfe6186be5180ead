package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/ramatoys/storefront/internal/admin"
	"github.com/ramatoys/storefront/internal/app"
	"github.com/ramatoys/storefront/internal/auth"
	"github.com/ramatoys/storefront/internal/catalog"
	cataloghttp "github.com/ramatoys/storefront/internal/catalog/http"
	"github.com/ramatoys/storefront/internal/images"
	"github.com/ramatoys/storefront/internal/observability"
	"github.com/ramatoys/storefront/internal/platform/cache"
	"github.com/ramatoys/storefront/internal/shared"
	"github.com/ramatoys/storefront/internal/view"
	"github.com/ramatoys/storefront/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	if err := cfg.RequireAdminCredentials(); err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	productStore, closeStore, err := app.OpenStore(ctx, cfg, redisClient, logger)
	if err != nil {
		logger.Error("open store", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	sessionManager := shared.NewSessionManager(redisClient, "rama_toys_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	var uploader images.Uploader = images.DataURIUploader{}
	if cfg.CloudinaryURL != "" {
		cld, err := images.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			logger.Error("init cloudinary", slog.Any("error", err))
			os.Exit(1)
		}
		uploader = cld
	}

	metrics := observability.NewMetrics()
	catalogService := catalog.NewService(catalog.NewRepository(productStore), metrics)
	authService := auth.NewService(auth.Credentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash})

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		CatalogHandler: cataloghttp.NewHandler(logger, catalogService, templates, csrfManager, metrics, cfg.WhatsAppPhone),
		AuthHandler:    auth.NewHandler(logger, authService, templates, sessionManager, csrfManager),
		AdminHandler:   admin.NewHandler(logger, catalogService, uploader, templates, csrfManager),
		JobHandler:     jobs.NewHandler(inspector, logger),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
