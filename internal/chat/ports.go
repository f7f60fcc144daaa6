package chat

import "context"

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Conversation — a session grouping an ordered sequence of messages.
// LastMessage is a denormalized cache of the most recently saved message
// text, always overwritten on save.
type Conversation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CreatedAt   int64  `json:"createdAt"`
	LastMessage string `json:"lastMessage"`
}

// Message — one turn, authored by the user or the AI agent.
// Timestamps are unix milliseconds and are the per-session sort key.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	Sender         Sender `json:"sender"`
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// Repo — persistence for both tables.
//
// SaveMessage is Upsert plus TouchLastMessage in a single transaction, so a
// crash cannot strand a saved message without the visible summary.
// DeleteConversation cascades to the session's messages.
type Repo interface {
	ListConversations(ctx context.Context) ([]Conversation, error)
	CreateConversation(ctx context.Context, id, title string) (Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	TouchLastMessage(ctx context.Context, id, text string) error

	ListBySession(ctx context.Context, conversationID string) ([]Message, error)
	Upsert(ctx context.Context, msg *Message) error
	SaveMessage(ctx context.Context, msg *Message) error
	DeleteBySession(ctx context.Context, conversationID string) error
}

// Service — the orchestration surface exposed to transports.
type Service interface {
	Chat(ctx context.Context, text, sessionID string) (ChatResponse, error)
	ListConversations(ctx context.Context) ([]Conversation, error)
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
	DeleteConversation(ctx context.Context, sessionID string) error
}
