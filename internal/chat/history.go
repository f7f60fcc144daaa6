package chat

import "github.com/lumina-gear/support-api/internal/ai"

// assembleHistory converts stored messages into the role-tagged context the
// gateway expects, preserving order. Empty input means a first turn.
func assembleHistory(msgs []Message) []ai.Message {
	out := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		role := ai.RoleUser
		if m.Sender == SenderAI {
			role = ai.RoleModel
		}
		out = append(out, ai.Message{Role: role, Text: m.Text})
	}
	return out
}

// dropInFlight removes the just-persisted message from a post-insert history
// fetch, scanning from the tail where it lands.
func dropInFlight(msgs []Message, id string) []Message {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].ID == id {
			return append(msgs[:i:i], msgs[i+1:]...)
		}
	}
	return msgs
}
