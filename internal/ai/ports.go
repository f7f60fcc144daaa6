package ai

import (
	"context"
	"errors"
)

// Role tags one side of the stored dialog in provider-neutral terms.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message — one prior turn handed to the provider as context.
type Message struct {
	Role Role
	Text string
}

// Config carries the per-call completion knobs.
type Config struct {
	Temperature     float32
	MaxOutputTokens int
	SystemPrompt    string
}

// Gateway — the external intelligence, knows nothing about sessions or the DB.
type Gateway interface {
	Complete(ctx context.Context, history []Message, newMessage string, cfg Config) (string, error)
}

// Every provider failure collapses into exactly one of these three.
// The original provider error stays wrapped underneath for diagnostics.
var (
	ErrAuth          = errors.New("ai: invalid or missing provider credential")
	ErrQuotaExceeded = errors.New("ai: provider quota exceeded")
	ErrUnavailable   = errors.New("ai: provider unavailable")
)
