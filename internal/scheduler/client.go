package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"shopwise_backend/platform/config"
)

// Client enqueues background tasks on the asynq queue.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates the task producer. Returns an error when Redis is
// not configured.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueReply schedules assistant reply generation for a pending
// message. Implements the assistant service's ReplyQueue port.
func (c *Client) EnqueueReply(ctx context.Context, conversationID, messageID, businessID uuid.UUID) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not initialized")
	}

	task, err := NewAssistantReplyTask(AssistantReplyPayload{
		ConversationID: conversationID.String(),
		MessageID:      messageID.String(),
		BusinessID:     businessID.String(),
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(2))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
