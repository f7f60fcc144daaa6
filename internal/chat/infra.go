package chat

import (
	"context"
	"database/sql"
	"time"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

// InitSchema creates both tables. The DDL is portable across Postgres and
// SQLite, which also backs the test suite.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			last_message TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			timestamp BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation_id
			ON messages (conversation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_created_at
			ON conversations (created_at)`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) ListConversations(ctx context.Context) ([]Conversation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, created_at, last_message
		FROM conversations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Conversation{}
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.LastMessage); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateConversation inserts if absent and always returns the stored record,
// so a second create with the same id is a no-op, not an error.
func (r *repo) CreateConversation(ctx context.Context, id, title string) (Conversation, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, created_at, last_message)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (id) DO NOTHING
	`, id, title, time.Now().UnixMilli())
	if err != nil {
		return Conversation{}, err
	}

	var c Conversation
	err = r.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, last_message
		FROM conversations
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Title, &c.CreatedAt, &c.LastMessage)
	return c, err
}

// DeleteConversation removes the conversation and its messages in one
// transaction. Deleting an absent id succeeds.
func (r *repo) DeleteConversation(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM messages WHERE conversation_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM conversations WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// TouchLastMessage overwrites the summary; a vanished conversation is a
// no-op so a late AI reply never crashes the turn.
func (r *repo) TouchLastMessage(ctx context.Context, id, text string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE conversations SET last_message = $1 WHERE id = $2
	`, text, id)
	return err
}

func (r *repo) ListBySession(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, sender, text, timestamp
		FROM messages
		WHERE conversation_id = $1
		ORDER BY timestamp ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		var sender string
		if err := rows.Scan(&m.ID, &m.ConversationID, &sender, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Sender = Sender(sender)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Upsert keeps at most one row per message id: a repeat save overwrites
// text and timestamp in place.
func (r *repo) Upsert(ctx context.Context, msg *Message) error {
	_, err := r.db.ExecContext(ctx, upsertMessageSQL,
		msg.ID, msg.ConversationID, string(msg.Sender), msg.Text, msg.Timestamp)
	return err
}

const upsertMessageSQL = `
	INSERT INTO messages (id, conversation_id, sender, text, timestamp)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET
		text = excluded.text,
		timestamp = excluded.timestamp
`

// SaveMessage upserts the message and refreshes the conversation summary in
// the same transaction.
func (r *repo) SaveMessage(ctx context.Context, msg *Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertMessageSQL,
		msg.ID, msg.ConversationID, string(msg.Sender), msg.Text, msg.Timestamp); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE conversations SET last_message = $1 WHERE id = $2
	`, msg.Text, msg.ConversationID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repo) DeleteBySession(ctx context.Context, conversationID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM messages WHERE conversation_id = $1
	`, conversationID)
	return err
}
