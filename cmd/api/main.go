package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopwise_backend/internal/adapters"
	"shopwise_backend/internal/adapters/storage"
	"shopwise_backend/internal/assistant"
	assistantservice "shopwise_backend/internal/assistant/service"
	"shopwise_backend/internal/auth"
	"shopwise_backend/internal/business"
	businessrepo "shopwise_backend/internal/business/repository"
	"shopwise_backend/internal/catalog"
	"shopwise_backend/internal/discovery"
	"shopwise_backend/internal/email"
	"shopwise_backend/internal/events"
	"shopwise_backend/internal/finance"
	financerepo "shopwise_backend/internal/finance/repository"
	"shopwise_backend/internal/geocode"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/internal/http/router"
	"shopwise_backend/internal/scheduler"
	"shopwise_backend/internal/workforce"
	workforcerepo "shopwise_backend/internal/workforce/repository"
	"shopwise_backend/migrations"
	"shopwise_backend/platform/ai"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/db"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Redis backs the discovery first-page cache and the asynq queue.
	// Both degrade gracefully when REDIS_URL is unset.
	var redisClient *redis.Client
	if cfg.GetRedisURL() != "" {
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid redis url", "error", err)
			panic("invalid redis url: " + err.Error())
		}
		redisClient = redis.NewClient(opt)
		defer func() {
			_ = redisClient.Close()
		}()
	} else {
		log.Warn("REDIS_URL not configured; discovery cache and assistant replies disabled")
	}

	// Storage service for file uploads (MinIO). Optional: logo and asset
	// endpoints return 503 when unset.
	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		svc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		storageSvc = svc
		ensureBucket(ctx, log, storageSvc, "product-assets", cfg.GetMinioBucketProductAssets())
		ensureBucket(ctx, log, storageSvc, "business-logos", cfg.GetMinioBucketBusinessLogos())
		log.Info("storage service initialized",
			"productAssetsBucket", cfg.GetMinioBucketProductAssets(),
			"businessLogosBucket", cfg.GetMinioBucketBusinessLogos(),
		)
	} else {
		log.Warn("MinIO not configured; file uploads disabled")
	}

	// Transactional email over SMTP. Optional: the email module logs and
	// drops events when unset.
	var sender email.Sender
	if cfg.IsEmailEnabled() {
		sender = email.NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
		)
		log.Info("email sender initialized", "host", cfg.GetSMTPHost())
	}

	// asynq producer for assistant reply generation.
	var replyQueue assistantservice.ReplyQueue
	if cfg.GetRedisURL() != "" {
		queueClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize task queue client", "error", err)
			panic("failed to initialize task queue client: " + err.Error())
		}
		defer func() {
			_ = queueClient.Close()
		}()
		replyQueue = queueClient
	}

	// Gemini client for the assistant. Optional: assistant endpoints
	// return 503 when unset.
	var generator assistantservice.Generator
	if cfg.IsAssistantEnabled() {
		geminiClient, err := ai.NewClient(ctx, cfg.GetGeminiAPIKey(), cfg.GetAssistantModel())
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
			panic("failed to initialize gemini client: " + err.Error())
		}
		generator = geminiClient
		log.Info("assistant generator initialized", "model", cfg.GetAssistantModel())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Email module subscribes to domain events (not HTTP-facing)
	emailModule := email.NewModule(sender, cfg, log)
	emailModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	discoveryModule := discovery.NewModule(pool, redisClient, cfg, val, log)
	discoveryModule.RegisterHandlers(eventBus)

	// Business profile changes propagate into the public directory.
	listingWriter := adapters.NewBusinessListingWriter(discoveryModule.Repository())
	businessModule := business.NewModule(pool, listingWriter, storageSvc, cfg, eventBus, val, log)

	catalogModule := catalog.NewModule(pool, storageSvc, cfg, eventBus, val, log)
	workforceModule := workforce.NewModule(pool, eventBus, val, log)

	// Sales decrement catalog stock atomically.
	stockAdjuster := adapters.NewCatalogStockAdjuster(catalogModule.Repository())
	financeModule := finance.NewModule(pool, stockAdjuster, eventBus, val, log)

	// The assistant reads a cross-module snapshot for its system prompt.
	snapshots := adapters.NewAssistantContextProvider(
		businessrepo.New(pool),
		catalogModule.Repository(),
		financerepo.New(pool),
		workforcerepo.New(pool),
	)
	assistantModule := assistant.NewModule(pool, generator, replyQueue, snapshots, val, log)

	geocodeModule := geocode.NewModule(cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			businessModule,
			catalogModule,
			workforceModule,
			financeModule,
			discoveryModule,
			assistantModule,
			geocodeModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

// withRetry runs fn up to attempts times with linear backoff, respecting
// context cancellation between tries.
func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err
			log.Warn(name+" failed, retrying", "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return errors.Join(lastErr, ctx.Err())
			case <-time.After(time.Duration(attempt) * baseDelay):
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("%s: giving up after %d attempts: %w", name, attempts, lastErr)
}
