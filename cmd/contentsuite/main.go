package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/content-suite/content-suite/internal/ai/gemini"
	"github.com/content-suite/content-suite/internal/ai/groq"
	"github.com/content-suite/content-suite/internal/app"
	"github.com/content-suite/content-suite/internal/audit"
	"github.com/content-suite/content-suite/internal/authz"
	"github.com/content-suite/content-suite/internal/brand"
	"github.com/content-suite/content-suite/internal/content"
	"github.com/content-suite/content-suite/internal/generation"
	"github.com/content-suite/content-suite/internal/identity"
	"github.com/content-suite/content-suite/internal/observability"
	"github.com/content-suite/content-suite/internal/platform/cache"
	"github.com/content-suite/content-suite/internal/platform/db"
	"github.com/content-suite/content-suite/internal/platform/objstore"
	"github.com/content-suite/content-suite/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, manual cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	var images objstore.Store
	if cfg.S3AccessKey != "" {
		s3Store, err := objstore.NewS3(ctx, objstore.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Endpoint:        cfg.S3Endpoint,
			UsePathStyle:    cfg.S3Endpoint != "",
		})
		if err != nil {
			logger.Error("init object store", slog.Any("error", err))
			os.Exit(1)
		}
		images = s3Store
	} else {
		logger.Warn("s3 credentials not configured, audit images stored in memory")
		images = objstore.NewMemory()
	}

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	telemetrySink := jobs.NewTelemetrySink(jobsClient, logger)

	metrics := observability.NewMetrics()

	textGen := app.InstrumentTextGenerator(groq.NewClient(groq.Config{
		APIKey:       cfg.GroqAPIKey,
		BaseURL:      cfg.GroqBaseURL,
		DefaultModel: cfg.GroqModel,
	}), metrics)
	vision := app.InstrumentVision(gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
	}), metrics)

	generationService := generation.NewService(textGen, telemetrySink, generation.Config{
		Model:       cfg.GroqModel,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}, logger)

	identityRepo := identity.NewRepository(dbpool)
	identityService := identity.NewService(identityRepo)
	tokens := identity.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authHandler := identity.NewHandler(logger, identityService, tokens)
	authMiddleware := identity.Middleware{Service: identityService, Tokens: tokens, Logger: logger}
	authzMiddleware := authz.Middleware{Logger: logger}

	brandRepo := brand.NewRepository(dbpool)
	brandCache := brand.NewCache(redisClient, cfg.ManualCacheTTL)
	brandService := brand.NewService(brandRepo, brandCache, generationService, logger)
	brandHandler := brand.NewHandler(logger, brandService, authzMiddleware)

	contentRepo := content.NewRepository(dbpool)
	contentService := content.NewService(contentRepo, brandService, generationService, logger)
	contentHandler := content.NewHandler(logger, contentService, authzMiddleware)

	auditRepo := audit.NewRepository(dbpool)
	auditService := audit.NewService(auditRepo, contentService, brandService, vision, images, telemetrySink, logger)
	auditHandler := audit.NewHandler(logger, auditService, authzMiddleware)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		BrandHandler:   brandHandler,
		ContentHandler: contentHandler,
		AuditHandler:   auditHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
