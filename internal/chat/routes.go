package chat

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/chat", h.HandleChat)
	r.Get("/api/conversations", h.HandleListConversations)
	r.Get("/api/conversations/{sessionID}/messages", h.HandleListMessages)
	r.Delete("/api/conversations/{sessionID}", h.HandleDeleteConversation)
}
