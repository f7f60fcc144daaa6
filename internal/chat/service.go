package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lumina-gear/support-api/internal/ai"
)

const (
	maxMessageRunes = 2000
	titleRunes      = 30

	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

type service struct {
	repo Repo
	ai   ai.Gateway
}

func NewService(repo Repo, gateway ai.Gateway) Service {
	return &service{
		repo: repo,
		ai:   gateway,
	}
}

// Chat runs one turn: validate, resolve the session, persist the user
// message, complete against prior history, persist the reply.
//
// A gateway failure is returned as-is and deliberately leaves the user
// message in place — the turn is lost, the message is not.
func (s *service) Chat(ctx context.Context, text, sessionID string) (ChatResponse, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ChatResponse{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > maxMessageRunes {
		return ChatResponse{}, ErrMessageTooLong
	}

	// A caller-supplied session id is used as-is, existence unchecked.
	if sessionID == "" {
		sessionID = newSessionID()
		if _, err := s.repo.CreateConversation(ctx, sessionID, titleFrom(trimmed)); err != nil {
			return ChatResponse{}, fmt.Errorf("create conversation: %w", err)
		}
		log.Printf("[chat] new session=%s", sessionID)
	}

	userMsg := &Message{
		ID:             newMessageID("u"),
		ConversationID: sessionID,
		Sender:         SenderUser,
		Text:           trimmed,
		Timestamp:      time.Now().UnixMilli(),
	}
	if err := s.repo.SaveMessage(ctx, userMsg); err != nil {
		return ChatResponse{}, fmt.Errorf("save user message: %w", err)
	}

	history, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("load history: %w", err)
	}
	prior := dropInFlight(history, userMsg.ID)

	reply, err := s.ai.Complete(ctx, assembleHistory(prior), trimmed, ai.Config{
		Temperature:     completionTemperature,
		MaxOutputTokens: completionMaxTokens,
		SystemPrompt:    supportSystemPrompt(),
	})
	if err != nil {
		return ChatResponse{}, err
	}

	aiMsg := &Message{
		ID:             newMessageID("a"),
		ConversationID: sessionID,
		Sender:         SenderAI,
		Text:           reply,
		Timestamp:      time.Now().UnixMilli(),
	}
	if err := s.repo.SaveMessage(ctx, aiMsg); err != nil {
		return ChatResponse{}, fmt.Errorf("save ai message: %w", err)
	}

	return ChatResponse{Reply: reply, SessionID: sessionID}, nil
}

func (s *service) ListConversations(ctx context.Context) ([]Conversation, error) {
	return s.repo.ListConversations(ctx)
}

func (s *service) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *service) DeleteConversation(ctx context.Context, sessionID string) error {
	log.Printf("[chat] delete session=%s", sessionID)
	return s.repo.DeleteConversation(ctx, sessionID)
}

// titleFrom derives the conversation title from the first message: the
// leading 30 runes plus an ellipsis marker, appended even for short input.
func titleFrom(text string) string {
	r := []rune(text)
	if len(r) > titleRunes {
		r = r[:titleRunes]
	}
	return string(r) + "..."
}

// Time-ordered prefix plus entropy; ordering still comes from timestamps.
func newSessionID() string {
	return fmt.Sprintf("sess_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func newMessageID(kind string) string {
	return fmt.Sprintf("msg_%s_%s", kind, uuid.NewString())
}
