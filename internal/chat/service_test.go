package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-gear/support-api/internal/ai"
)

type fakeGateway struct {
	reply string
	err   error

	calls      int
	gotHistory []ai.Message
	gotMessage string
	gotConfig  ai.Config
}

func (f *fakeGateway) Complete(_ context.Context, history []ai.Message, newMessage string, cfg ai.Config) (string, error) {
	f.calls++
	f.gotHistory = history
	f.gotMessage = newMessage
	f.gotConfig = cfg
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(t *testing.T, gw *fakeGateway) (Service, Repo) {
	t.Helper()
	repo := testRepo(t)
	return NewService(repo, gw), repo
}

func TestChat_EmptyMessage(t *testing.T) {
	gw := &fakeGateway{reply: "hi"}
	svc, repo := newTestService(t, gw)

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := svc.Chat(context.Background(), input, "sess_1")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Message cannot be empty.", ve.Error())
	}

	assert.Zero(t, gw.calls)

	// Nothing was persisted.
	messages, err := repo.ListBySession(context.Background(), "sess_1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestChat_MessageLengthBoundary(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	svc, _ := newTestService(t, gw)
	ctx := context.Background()

	_, err := svc.Chat(ctx, strings.Repeat("a", 2001), "sess_1")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Message is too long. Please limit to 2000 characters.", ve.Error())

	// Exactly 2000 is fine, and trailing whitespace is trimmed before counting.
	_, err = svc.Chat(ctx, strings.Repeat("a", 2000)+"   ", "sess_1")
	require.NoError(t, err)
}

func TestChat_NewSession(t *testing.T) {
	gw := &fakeGateway{reply: "Hello! How can I help you with Lumina Gear today?"}
	svc, repo := newTestService(t, gw)
	ctx := context.Background()

	resp, err := svc.Chat(ctx, "Hello there", "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, gw.reply, resp.Reply)

	conversations, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, resp.SessionID, conversations[0].ID)
	assert.Equal(t, "Hello there...", conversations[0].Title)
	assert.Equal(t, gw.reply, conversations[0].LastMessage)

	messages, err := repo.ListBySession(ctx, resp.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, SenderUser, messages[0].Sender)
	assert.Equal(t, "Hello there", messages[0].Text)
	assert.Equal(t, SenderAI, messages[1].Sender)
	assert.Equal(t, gw.reply, messages[1].Text)
}

func TestChat_TitleTruncatedToThirtyRunes(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	svc, repo := newTestService(t, gw)
	ctx := context.Background()

	long := "My order from three weeks ago still has not arrived"
	_, err := svc.Chat(ctx, long, "")
	require.NoError(t, err)

	conversations, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, string([]rune(long)[:30])+"...", conversations[0].Title)
}

func TestChat_HistoryExcludesInFlightMessage(t *testing.T) {
	gw := &fakeGateway{reply: "first reply"}
	svc, _ := newTestService(t, gw)
	ctx := context.Background()

	resp, err := svc.Chat(ctx, "hi", "")
	require.NoError(t, err)
	assert.Empty(t, gw.gotHistory, "first turn must see no prior context")
	assert.Equal(t, "hi", gw.gotMessage)

	gw.reply = "second reply"
	_, err = svc.Chat(ctx, "and my refund?", resp.SessionID)
	require.NoError(t, err)

	require.Equal(t, []ai.Message{
		{Role: ai.RoleUser, Text: "hi"},
		{Role: ai.RoleModel, Text: "first reply"},
	}, gw.gotHistory)
	assert.Equal(t, "and my refund?", gw.gotMessage)
}

func TestChat_FixedCompletionConfig(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	svc, _ := newTestService(t, gw)

	_, err := svc.Chat(context.Background(), "hi", "")
	require.NoError(t, err)

	assert.InDelta(t, 0.7, gw.gotConfig.Temperature, 0.0001)
	assert.Equal(t, 1000, gw.gotConfig.MaxOutputTokens)
	assert.Contains(t, gw.gotConfig.SystemPrompt, "customer support agent")
	assert.Contains(t, gw.gotConfig.SystemPrompt, "Lumina Gear")
}

func TestChat_GatewayFailureKeepsUserTurn(t *testing.T) {
	gw := &fakeGateway{err: fmt.Errorf("%w: 429 from provider", ai.ErrQuotaExceeded)}
	svc, repo := newTestService(t, gw)
	ctx := context.Background()

	_, err := svc.Chat(ctx, "hello?", "sess_1")
	require.ErrorIs(t, err, ai.ErrQuotaExceeded)

	// The user message survives the failed completion.
	messages, err := repo.ListBySession(ctx, "sess_1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, SenderUser, messages[0].Sender)
	assert.Equal(t, "hello?", messages[0].Text)
}

func TestChat_SuppliedSessionUsedWithoutExistenceCheck(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	svc, repo := newTestService(t, gw)
	ctx := context.Background()

	resp, err := svc.Chat(ctx, "hi", "sess_external")
	require.NoError(t, err)
	assert.Equal(t, "sess_external", resp.SessionID)

	// No conversation record is created for a caller-supplied id.
	conversations, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, conversations)

	messages, err := repo.ListBySession(ctx, "sess_external")
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestDeleteConversation_ServiceIdempotent(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	svc, _ := newTestService(t, gw)
	ctx := context.Background()

	resp, err := svc.Chat(ctx, "hi", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteConversation(ctx, resp.SessionID))
	require.NoError(t, svc.DeleteConversation(ctx, resp.SessionID))
	require.NoError(t, svc.DeleteConversation(ctx, "sess_x"))

	messages, err := svc.ListMessages(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
