package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumina-gear/support-api/internal/ai"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}

	resp, err := h.svc.Chat(r.Context(), payload.Message, payload.SessionID)
	if err != nil {
		writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.svc.ListConversations(r.Context())
	if err != nil {
		log.Println("[http] list conversations error:", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

func (h *Handler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.svc.ListMessages(r.Context(), sessionID)
	if err != nil {
		log.Println("[http] list messages error:", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *Handler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.svc.DeleteConversation(r.Context(), sessionID); err != nil {
		log.Println("[http] delete conversation error:", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Conversation deleted successfully",
	})
}

// writeChatError maps the core taxonomy onto HTTP. Validation messages go
// back verbatim; provider auth failures get a generic line so the credential
// never leaks; everything else keeps its diagnostics in the log only.
func writeChatError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		writeDetail(w, http.StatusBadRequest, ve.Error())
		return
	}

	log.Println("[http] chat error:", err)

	switch {
	case errors.Is(err, ai.ErrAuth):
		writeDetail(w, http.StatusInternalServerError,
			"System Error: Invalid configuration. Please check the API key.")
	case errors.Is(err, ai.ErrQuotaExceeded):
		writeDetail(w, http.StatusInternalServerError,
			"API quota exceeded. Please try again later.")
	case errors.Is(err, ai.ErrUnavailable):
		writeDetail(w, http.StatusInternalServerError,
			"The AI agent is currently unavailable. Please try again in a moment.")
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
