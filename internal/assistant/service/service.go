// Package service implements the AI chat assistant: conversations,
// message intake and asynchronous reply generation.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"shopwise_backend/internal/assistant/repository"
	"shopwise_backend/internal/assistant/transport"
	"shopwise_backend/platform/ai"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/logger"
)

const defaultTitleLength = 60

const systemPromptPreamble = `You are ShopWise, a business assistant for small business owners.
You answer questions about the owner's products, staff, sales and expenses.
Be concise and practical. When you lack data, say so instead of guessing.
Current business snapshot:
`

// Generator produces an assistant completion. Implemented by the
// platform Gemini client.
type Generator interface {
	Generate(ctx context.Context, system string, history []ai.Message) (string, error)
}

// ReplyQueue schedules asynchronous reply generation. Implemented by the
// scheduler client.
type ReplyQueue interface {
	EnqueueReply(ctx context.Context, conversationID, messageID, businessID uuid.UUID) error
}

// ContextProvider assembles the business snapshot injected into the
// system prompt. Implemented by an adapter over the other modules.
type ContextProvider interface {
	Snapshot(ctx context.Context, businessID uuid.UUID) (string, error)
}

// Service provides assistant business logic.
type Service struct {
	repo      *repository.Repo
	generator Generator
	queue     ReplyQueue
	snapshots ContextProvider
	log       *logger.Logger
}

// New creates a new assistant service. generator and queue may be nil
// when the assistant is not configured; message intake then returns 503.
func New(repo *repository.Repo, generator Generator, queue ReplyQueue, snapshots ContextProvider, log *logger.Logger) *Service {
	return &Service{repo: repo, generator: generator, queue: queue, snapshots: snapshots, log: log}
}

// CreateConversation starts a thread.
func (s *Service) CreateConversation(ctx context.Context, businessID uuid.UUID, req transport.CreateConversationRequest) (transport.ConversationResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "New conversation"
	}

	conv, err := s.repo.CreateConversation(ctx, businessID, title)
	if err != nil {
		return transport.ConversationResponse{}, err
	}
	return toConversationResponse(conv, nil), nil
}

// ListConversations lists threads, most recently active first.
func (s *Service) ListConversations(ctx context.Context, businessID uuid.UUID) (transport.ConversationListResponse, error) {
	items, err := s.repo.ListConversations(ctx, businessID)
	if err != nil {
		return transport.ConversationListResponse{}, err
	}

	responses := make([]transport.ConversationResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toConversationResponse(item, nil))
	}
	return transport.ConversationListResponse{Items: responses}, nil
}

// GetConversation fetches a thread with its messages.
func (s *Service) GetConversation(ctx context.Context, businessID, id uuid.UUID) (transport.ConversationResponse, error) {
	conv, err := s.repo.GetConversation(ctx, businessID, id)
	if err != nil {
		return transport.ConversationResponse{}, err
	}

	messages, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return transport.ConversationResponse{}, err
	}
	return toConversationResponse(conv, messages), nil
}

// DeleteConversation removes a thread.
func (s *Service) DeleteConversation(ctx context.Context, businessID, id uuid.UUID) error {
	return s.repo.DeleteConversation(ctx, businessID, id)
}

// PostMessage accepts a user turn, records a pending assistant turn and
// schedules reply generation. The client polls the conversation until
// the pending turn resolves.
func (s *Service) PostMessage(ctx context.Context, businessID, conversationID uuid.UUID, req transport.PostMessageRequest) (transport.PostMessageResponse, error) {
	if s.generator == nil || s.queue == nil {
		return transport.PostMessageResponse{}, apperr.Unavailable("assistant is not configured")
	}

	conv, err := s.repo.GetConversation(ctx, businessID, conversationID)
	if err != nil {
		return transport.PostMessageResponse{}, err
	}

	content := strings.TrimSpace(req.Content)
	userMsg, err := s.repo.AppendMessage(ctx, conv.ID, repository.RoleUser, content, repository.StatusComplete)
	if err != nil {
		return transport.PostMessageResponse{}, err
	}

	// First message titles the thread.
	if conv.Title == "New conversation" {
		_ = s.retitle(ctx, conv, content)
	}

	pending, err := s.repo.AppendMessage(ctx, conv.ID, repository.RoleAssistant, "", repository.StatusPending)
	if err != nil {
		return transport.PostMessageResponse{}, err
	}

	if err := s.queue.EnqueueReply(ctx, conv.ID, pending.ID, businessID); err != nil {
		// The pending row must not stay stuck when enqueue fails.
		_ = s.repo.ResolvePendingMessage(ctx, pending.ID, "", repository.StatusFailed)
		return transport.PostMessageResponse{}, apperr.Unavailable("assistant queue is unavailable")
	}

	return transport.PostMessageResponse{
		UserMessage:      toMessageResponse(userMsg),
		AssistantMessage: toMessageResponse(pending),
	}, nil
}

// GenerateReply resolves one pending assistant turn. Called by the
// scheduler worker. Generation failures mark the turn failed rather than
// retrying, so the client gets a terminal state.
func (s *Service) GenerateReply(ctx context.Context, businessID, conversationID, messageID uuid.UUID) error {
	if s.generator == nil {
		return s.repo.ResolvePendingMessage(ctx, messageID, "", repository.StatusFailed)
	}

	messages, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return err
	}

	history := make([]ai.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Status != repository.StatusComplete {
			continue
		}
		role := ai.RoleUser
		if msg.Role == repository.RoleAssistant {
			role = ai.RoleAssistant
		}
		history = append(history, ai.Message{Role: role, Text: msg.Content})
	}
	if len(history) == 0 {
		return s.repo.ResolvePendingMessage(ctx, messageID, "", repository.StatusFailed)
	}

	system := systemPromptPreamble
	if s.snapshots != nil {
		snapshot, err := s.snapshots.Snapshot(ctx, businessID)
		if err != nil {
			s.log.Warn("assistant snapshot failed", "business_id", businessID, "error", err)
		} else {
			system += snapshot
		}
	}

	reply, err := s.generator.Generate(ctx, system, history)
	if err != nil {
		s.log.Warn("assistant generation failed", "conversation_id", conversationID, "error", err)
		return s.repo.ResolvePendingMessage(ctx, messageID, "", repository.StatusFailed)
	}

	if err := s.repo.ResolvePendingMessage(ctx, messageID, reply, repository.StatusComplete); err != nil {
		return err
	}

	s.log.Info("assistant reply generated", "conversation_id", conversationID, "message_id", messageID)
	return nil
}

func (s *Service) retitle(ctx context.Context, conv repository.Conversation, firstMessage string) error {
	return s.repo.RenameConversation(ctx, conv.ID, truncateTitle(firstMessage, defaultTitleLength))
}

// truncateTitle shortens s to at most max characters, cutting on rune
// boundaries so multi-byte input is never split mid-sequence.
func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func toConversationResponse(conv repository.Conversation, messages []repository.Message) transport.ConversationResponse {
	resp := transport.ConversationResponse{
		ID:        conv.ID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(msg))
	}
	return resp
}

func toMessageResponse(msg repository.Message) transport.MessageResponse {
	return transport.MessageResponse{
		ID:        msg.ID,
		Role:      msg.Role,
		Content:   msg.Content,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
	}
}
