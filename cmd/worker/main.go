package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shopwise_backend/internal/adapters"
	assistantrepo "shopwise_backend/internal/assistant/repository"
	assistantservice "shopwise_backend/internal/assistant/service"
	businessrepo "shopwise_backend/internal/business/repository"
	catalogrepo "shopwise_backend/internal/catalog/repository"
	discoveryrepo "shopwise_backend/internal/discovery/repository"
	financerepo "shopwise_backend/internal/finance/repository"
	"shopwise_backend/internal/scheduler"
	workforcerepo "shopwise_backend/internal/workforce/repository"
	"shopwise_backend/platform/ai"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/db"
	"shopwise_backend/platform/logger"
)

// The worker consumes the asynq queue: assistant reply generation and
// the nightly directory counter reconciliation.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	var generator assistantservice.Generator
	if cfg.IsAssistantEnabled() {
		geminiClient, err := ai.NewClient(ctx, cfg.GetGeminiAPIKey(), cfg.GetAssistantModel())
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
			panic("failed to initialize gemini client: " + err.Error())
		}
		generator = geminiClient
	} else {
		log.Warn("GEMINI_API_KEY not configured; assistant reply tasks will fail their messages")
	}

	snapshots := adapters.NewAssistantContextProvider(
		businessrepo.New(pool),
		catalogrepo.New(pool),
		financerepo.New(pool),
		workforcerepo.New(pool),
	)

	// The worker generates replies directly, so it needs no enqueue port.
	assistantSvc := assistantservice.New(assistantrepo.New(pool), generator, nil, snapshots, log)
	directoryRepo := discoveryrepo.New(pool)

	worker, err := scheduler.NewWorker(cfg, assistantSvc, directoryRepo, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker shut down")
}
