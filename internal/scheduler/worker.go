package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
)

// ReplyGenerator resolves a pending assistant message. Implemented by
// the assistant service.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, businessID, conversationID, messageID uuid.UUID) error
}

// DirectoryRefresher reconciles the denormalized directory counters.
// Implemented by the discovery repository.
type DirectoryRefresher interface {
	RefreshAllCounts(ctx context.Context) (int, error)
}

// Worker consumes background tasks and runs the nightly reconciliation.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	replies   ReplyGenerator
	directory DirectoryRefresher
	log       *logger.Logger
}

// NewWorker creates the task consumer. replies may be nil when the
// assistant is not configured; its tasks are then dropped.
func NewWorker(cfg config.SchedulerConfig, replies ReplyGenerator, directory DirectoryRefresher, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	scheduler := asynq.NewScheduler(opt, nil)
	if _, err := scheduler.Register("0 3 * * *", NewDirectoryRefreshTask(), asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register directory refresh: %w", err)
	}

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		replies:   replies,
		directory: directory,
		log:       log,
	}

	mux.HandleFunc(TaskAssistantReply, w.handleAssistantReply)
	mux.HandleFunc(TaskDirectoryRefresh, w.handleDirectoryRefresh)

	return w, nil
}

func (w *Worker) handleAssistantReply(ctx context.Context, task *asynq.Task) error {
	if w.replies == nil {
		return nil
	}

	payload, err := ParseAssistantReplyPayload(task)
	if err != nil {
		return err
	}

	businessID, err := uuid.Parse(payload.BusinessID)
	if err != nil {
		return err
	}
	conversationID, err := uuid.Parse(payload.ConversationID)
	if err != nil {
		return err
	}
	messageID, err := uuid.Parse(payload.MessageID)
	if err != nil {
		return err
	}

	return w.replies.GenerateReply(ctx, businessID, conversationID, messageID)
}

func (w *Worker) handleDirectoryRefresh(ctx context.Context, _ *asynq.Task) error {
	if w.directory == nil {
		return nil
	}

	refreshed, err := w.directory.RefreshAllCounts(ctx)
	if err != nil {
		return err
	}

	w.log.Info("directory counters reconciled", "listings", refreshed)
	return nil
}

// Run blocks until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.scheduler.Shutdown()
		w.server.Shutdown()
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.log.Error("scheduler stopped", "error", err)
		}
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("worker stopped", "error", err)
	}
}
