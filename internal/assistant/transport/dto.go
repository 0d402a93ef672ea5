package transport

import "github.com/google/uuid"

type CreateConversationRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"createdAt"`
}

type ConversationResponse struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Messages  []MessageResponse `json:"messages,omitempty"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}

type ConversationListResponse struct {
	Items []ConversationResponse `json:"items"`
}

// PostMessageResponse returns the accepted user turn plus the pending
// assistant turn the client should poll for.
type PostMessageResponse struct {
	UserMessage      MessageResponse `json:"userMessage"`
	AssistantMessage MessageResponse `json:"assistantMessage"`
}
