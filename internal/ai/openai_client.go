package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// FallbackReply is returned when the provider answers successfully but empty.
const FallbackReply = "I'm sorry, I couldn't generate a response. Please try again."

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds the gateway from the environment.
// A missing key is a warning, not a startup failure: calls will surface
// ErrAuth once the provider rejects them.
func NewOpenAIClient() *OpenAIClient {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		log.Println("[ai] WARNING: OPENAI_API_KEY is not set; completion calls will fail")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(
	ctx context.Context,
	history []Message,
	newMessage string,
	cfg Config,
) (string, error) {

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)

	if cfg.SystemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: cfg.SystemPrompt,
		})
	}

	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Text,
		})
	}

	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: newMessage,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
	})
	if err != nil {
		log.Println("[ai] provider error:", err)
		return "", mapProviderError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Println("[ai] empty completion, substituting fallback reply")
		return FallbackReply, nil
	}

	return resp.Choices[0].Message.Content, nil
}

// mapProviderError folds provider failures into the three-kind taxonomy.
// A deadline hit on the request context counts as the provider being away.
func mapProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
