package services

import (
	"context"
	"strings"
	"time"

	"github.com/classpulse/backend/internal/application/loaders"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	apperrors "github.com/classpulse/backend/pkg/errors"
)

// AddReviewInput carries the fields of a review
type AddReviewInput struct {
	UserID  string
	Rating  int
	Comment string
}

// ReviewService handles peer reviews
type ReviewService struct {
	reviews repositories.ReviewRepository
	users   repositories.UserRepository
	now     func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(reviews repositories.ReviewRepository, users repositories.UserRepository) *ReviewService {
	return &ReviewService{reviews: reviews, users: users, now: time.Now}
}

// Add stores a review. The author is not checked for existence.
func (s *ReviewService) Add(ctx context.Context, in AddReviewInput) (*entities.Review, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, apperrors.NewValidationError("Missing fields")
	}

	review := &entities.Review{
		UserID:  in.UserID,
		Rating:  in.Rating,
		Comment: in.Comment,
		Date:    s.now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// List returns all reviews, newest first, with author names expanded.
func (s *ReviewService) List(ctx context.Context) ([]*entities.ReviewEntry, error) {
	loader := loaders.NewUserLoader(s.users)
	var (
		records []*entities.Review
		refs    []userRef
	)
	for review, err := range s.reviews.List(ctx, repositories.SortDescending) {
		if err != nil {
			return nil, err
		}
		records = append(records, review)
		refs = append(refs, queueUser(ctx, loader, review.UserID))
	}

	entries := make([]*entities.ReviewEntry, 0, len(records))
	for i, review := range records {
		user, err := refs[i].resolve(entities.ProjectName)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to expand review users", err)
		}
		entries = append(entries, &entities.ReviewEntry{
			ID:      review.ID,
			User:    user,
			Rating:  review.Rating,
			Comment: review.Comment,
			Date:    review.Date,
		})
	}
	return entries, nil
}
