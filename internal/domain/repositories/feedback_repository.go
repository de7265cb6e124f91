package repositories

import (
	"context"
	"time"

	"github.com/classpulse/backend/internal/domain/entities"
)

// FeedbackFilter narrows a feedback listing
type FeedbackFilter struct {
	Since time.Time
	Sort  SortDirection
}

// FeedbackRepository defines the interface for feedback operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entities.Feedback) error

	// List streams feedback ordered by creation time.
	List(ctx context.Context, filter FeedbackFilter) Seq[*entities.Feedback]

	// CountByMood counts feedback created at or after since, grouped by mood.
	// Only moods that occurred are present in the result.
	CountByMood(ctx context.Context, since time.Time) (map[entities.Mood]int64, error)
}
