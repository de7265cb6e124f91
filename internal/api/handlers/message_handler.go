package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/entities"
)

// MessageService defines the messaging operations used by the handler.
type MessageService interface {
	Send(ctx context.Context, in services.SendMessageInput) (*entities.Message, error)
	ListForUser(ctx context.Context, userID string) ([]*entities.MessageEntry, error)
}

// MessageHandler handles direct messages.
type MessageHandler struct {
	service MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(service MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type messageRequest struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Text   string `json:"text"`
}

// SendMessage handles POST /api/message
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var payload messageRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.FromID) == "" || strings.TrimSpace(payload.ToID) == "" || strings.TrimSpace(payload.Text) == "" {
		respondWithError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	_, err := h.service.Send(r.Context(), services.SendMessageInput{
		FromID: payload.FromID,
		ToID:   payload.ToID,
		Text:   payload.Text,
	})
	if err != nil {
		respondWithAppError(w, r, err, "Message sending failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Message sent!",
	})
}

// ListMessages handles GET /api/messages/{userId}
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListForUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondWithAppError(w, r, err, "Failed to fetch messages")
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}
