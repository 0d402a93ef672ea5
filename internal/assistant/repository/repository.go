// Package repository implements assistant conversation persistence.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/platform/apperr"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message statuses. User messages are always complete; assistant
// messages start pending and move to complete or failed.
const (
	StatusPending  = "pending"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// Conversation is one chat thread between an owner and the assistant.
type Conversation struct {
	ID         uuid.UUID `db:"id"`
	BusinessID uuid.UUID `db:"business_id"`
	Title      string    `db:"title"`
	CreatedAt  string    `db:"created_at"`
	UpdatedAt  string    `db:"updated_at"`
}

// Message is one turn in a conversation.
type Message struct {
	ID             uuid.UUID `db:"id"`
	ConversationID uuid.UUID `db:"conversation_id"`
	Role           string    `db:"role"`
	Content        string    `db:"content"`
	Status         string    `db:"status"`
	CreatedAt      string    `db:"created_at"`
}

// Repo implements assistant persistence on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new assistant repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateConversation starts a thread.
func (r *Repo) CreateConversation(ctx context.Context, businessID uuid.UUID, title string) (Conversation, error) {
	var conv Conversation
	var createdAt, updatedAt time.Time
	err := r.pool.QueryRow(ctx, `
		INSERT INTO assistant_conversations (business_id, title)
		VALUES ($1, $2)
		RETURNING id, business_id, title, created_at, updated_at
	`, businessID, title).Scan(&conv.ID, &conv.BusinessID, &conv.Title, &createdAt, &updatedAt)
	if err != nil {
		return Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	conv.CreatedAt = createdAt.Format(time.RFC3339)
	conv.UpdatedAt = updatedAt.Format(time.RFC3339)
	return conv, nil
}

// GetConversation fetches one thread scoped to a business.
func (r *Repo) GetConversation(ctx context.Context, businessID, id uuid.UUID) (Conversation, error) {
	var conv Conversation
	var createdAt, updatedAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_id, title, created_at, updated_at
		FROM assistant_conversations
		WHERE id = $1 AND business_id = $2
	`, id, businessID).Scan(&conv.ID, &conv.BusinessID, &conv.Title, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Conversation{}, apperr.NotFound("conversation not found")
		}
		return Conversation{}, fmt.Errorf("get conversation: %w", err)
	}
	conv.CreatedAt = createdAt.Format(time.RFC3339)
	conv.UpdatedAt = updatedAt.Format(time.RFC3339)
	return conv, nil
}

// ListConversations lists threads, most recently active first.
func (r *Repo) ListConversations(ctx context.Context, businessID uuid.UUID) ([]Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, business_id, title, created_at, updated_at
		FROM assistant_conversations
		WHERE business_id = $1
		ORDER BY updated_at DESC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	items := make([]Conversation, 0)
	for rows.Next() {
		var conv Conversation
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&conv.ID, &conv.BusinessID, &conv.Title, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conv.CreatedAt = createdAt.Format(time.RFC3339)
		conv.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, conv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate conversations: %w", rows.Err())
	}
	return items, nil
}

// RenameConversation sets the thread title.
func (r *Repo) RenameConversation(ctx context.Context, id uuid.UUID, title string) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE assistant_conversations SET title = $2, updated_at = now() WHERE id = $1
	`, id, title); err != nil {
		return fmt.Errorf("rename conversation: %w", err)
	}
	return nil
}

// DeleteConversation removes a thread and its messages.
func (r *Repo) DeleteConversation(ctx context.Context, businessID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM assistant_conversations WHERE id = $1 AND business_id = $2
	`, id, businessID)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("conversation not found")
	}
	return nil
}

// AppendMessage adds a turn and bumps the conversation's updated_at.
func (r *Repo) AppendMessage(ctx context.Context, conversationID uuid.UUID, role, content, status string) (Message, error) {
	var msg Message
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		INSERT INTO assistant_messages (conversation_id, role, content, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, conversation_id, role, content, status, created_at
	`, conversationID, role, content, status).Scan(
		&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Status, &createdAt,
	)
	if err != nil {
		return Message{}, fmt.Errorf("append message: %w", err)
	}
	msg.CreatedAt = createdAt.Format(time.RFC3339)

	if _, err := r.pool.Exec(ctx, `
		UPDATE assistant_conversations SET updated_at = now() WHERE id = $1
	`, conversationID); err != nil {
		return Message{}, fmt.Errorf("touch conversation: %w", err)
	}
	return msg, nil
}

// ListMessages lists a conversation's turns, oldest first.
func (r *Repo) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, role, content, status, created_at
		FROM assistant_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]Message, 0)
	for rows.Next() {
		var msg Message
		var createdAt time.Time
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.CreatedAt = createdAt.Format(time.RFC3339)
		items = append(items, msg)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}
	return items, nil
}

// ResolvePendingMessage finalizes a pending assistant turn.
func (r *Repo) ResolvePendingMessage(ctx context.Context, messageID uuid.UUID, content, status string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE assistant_messages
		SET content = $2, status = $3
		WHERE id = $1 AND status = $4
	`, messageID, content, status, StatusPending)
	if err != nil {
		return fmt.Errorf("resolve pending message: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("pending message not found")
	}
	return nil
}

// GetMessage fetches one turn.
func (r *Repo) GetMessage(ctx context.Context, messageID uuid.UUID) (Message, error) {
	var msg Message
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT id, conversation_id, role, content, status, created_at
		FROM assistant_messages
		WHERE id = $1
	`, messageID).Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Status, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, apperr.NotFound("message not found")
		}
		return Message{}, fmt.Errorf("get message: %w", err)
	}
	msg.CreatedAt = createdAt.Format(time.RFC3339)
	return msg, nil
}
