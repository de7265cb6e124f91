package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/entities"
)

// FeedbackService defines the feedback operations used by the handler.
type FeedbackService interface {
	Submit(ctx context.Context, in services.SubmitFeedbackInput) (*entities.Feedback, error)
	List(ctx context.Context) ([]*entities.FeedbackEntry, error)
	Stats(ctx context.Context) (entities.MoodStats, error)
}

// FeedbackHandler handles mood feedback.
type FeedbackHandler struct {
	service FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type feedbackRequest struct {
	UserID string `json:"userId"`
	Mood   string `json:"mood"`
	Note   string `json:"note"`
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload feedbackRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.UserID) == "" || strings.TrimSpace(payload.Mood) == "" {
		respondWithError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	_, err := h.service.Submit(r.Context(), services.SubmitFeedbackInput{
		UserID: payload.UserID,
		Mood:   entities.Mood(payload.Mood),
		Note:   payload.Note,
	})
	if err != nil {
		respondWithAppError(w, r, err, "Feedback submission failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Feedback saved successfully!",
	})
}

// ListFeedback handles GET /api/feedback
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err, "Failed to fetch feedback")
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// GetStats handles GET /api/stats
func (h *FeedbackHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, r, err, "Failed to fetch stats")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
