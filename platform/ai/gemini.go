// Package ai wraps the Gemini API behind a small chat-completion client.
// This is part of the platform layer and contains no business logic.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Message roles accepted by Generate.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role string
	Text string
}

// Client generates chat completions with Gemini.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. The model defaults to
// gemini-2.0-flash when empty.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate produces the next assistant turn for the given history. The
// system instruction is prepended as model guidance, not as a turn.
func (c *Client) Generate(ctx context.Context, system string, history []Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		var role genai.Role = genai.RoleUser
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty completion")
	}
	return text, nil
}
