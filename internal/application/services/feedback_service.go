package services

import (
	"context"
	"strings"
	"time"

	"github.com/classpulse/backend/internal/application/loaders"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/observability"
	apperrors "github.com/classpulse/backend/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const feedbackProjection = entities.ProjectName | entities.ProjectEmail | entities.ProjectSchool

// SubmitFeedbackInput carries the fields of a feedback submission
type SubmitFeedbackInput struct {
	UserID string
	Mood   entities.Mood
	Note   string
}

// FeedbackService handles mood feedback submissions and their aggregates.
type FeedbackService struct {
	feedback repositories.FeedbackRepository
	users    repositories.UserRepository
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(feedback repositories.FeedbackRepository, users repositories.UserRepository, metrics *observability.Metrics) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		users:    users,
		metrics:  metrics,
		now:      time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *FeedbackService) WithClock(now func() time.Time) *FeedbackService {
	s.now = now
	return s
}

// Submit stores feedback for an existing user. The role is copied from the
// user at submission time and never recomputed.
func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (*entities.Feedback, error) {
	if strings.TrimSpace(in.UserID) == "" || in.Mood == "" {
		return nil, apperrors.NewValidationError("Missing fields")
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	feedback := &entities.Feedback{
		UserID: user.ID,
		Role:   user.Role(),
		Mood:   in.Mood,
		Note:   in.Note,
		Date:   s.now().UTC(),
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, err
	}

	observability.RecordFeedback(ctx, s.metrics, string(feedback.Mood), string(feedback.Role))
	return feedback, nil
}

// List returns all feedback, newest first, with submitters expanded.
func (s *FeedbackService) List(ctx context.Context) ([]*entities.FeedbackEntry, error) {
	ctx, span := observability.StartSpan(ctx, "FeedbackService.List")
	defer span.End()

	loader := loaders.NewUserLoader(s.users)
	var (
		records []*entities.Feedback
		refs    []userRef
	)
	for fb, err := range s.feedback.List(ctx, repositories.FeedbackFilter{Sort: repositories.SortDescending}) {
		if err != nil {
			return nil, err
		}
		records = append(records, fb)
		refs = append(refs, queueUser(ctx, loader, fb.UserID))
	}

	entries := make([]*entities.FeedbackEntry, 0, len(records))
	for i, fb := range records {
		user, err := refs[i].resolve(feedbackProjection)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to expand feedback users", err)
		}
		entries = append(entries, &entities.FeedbackEntry{
			ID:        fb.ID,
			User:      user,
			Role:      fb.Role,
			Mood:      fb.Mood,
			Note:      fb.Note,
			Date:      fb.Date,
			CreatedAt: fb.CreatedAt,
			UpdatedAt: fb.UpdatedAt,
		})
	}

	observability.SetSpanAttributes(span, attribute.Int("feedback.count", len(entries)))
	return entries, nil
}

// Stats counts feedback per mood over the trailing seven days. Every mood is
// present in the result, zero when it did not occur.
func (s *FeedbackService) Stats(ctx context.Context) (entities.MoodStats, error) {
	counts, err := s.feedback.CountByMood(ctx, s.now().UTC().Add(-entities.StatsWindow))
	if err != nil {
		return entities.MoodStats{}, err
	}
	return entities.NewMoodStats(counts), nil
}
