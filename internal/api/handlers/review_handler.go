package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/entities"
)

// ReviewService defines the review operations used by the handler.
type ReviewService interface {
	Add(ctx context.Context, in services.AddReviewInput) (*entities.Review, error)
	List(ctx context.Context) ([]*entities.ReviewEntry, error)
}

// ReviewHandler handles peer reviews.
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type reviewRequest struct {
	UserID  string       `json:"userId"`
	Rating  *wholeNumber `json:"rating"`
	Comment string       `json:"comment"`
}

// AddReview handles POST /api/review
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var payload reviewRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.UserID) == "" || payload.Rating == nil {
		respondWithError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	_, err := h.service.Add(r.Context(), services.AddReviewInput{
		UserID:  payload.UserID,
		Rating:  int(*payload.Rating),
		Comment: payload.Comment,
	})
	if err != nil {
		respondWithAppError(w, r, err, "Review submission failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Review added successfully!",
	})
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err, "Failed to fetch reviews")
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}
