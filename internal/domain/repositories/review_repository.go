package repositories

import (
	"context"

	"github.com/classpulse/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error

	// List streams all reviews ordered by date.
	List(ctx context.Context, sort SortDirection) Seq[*entities.Review]
}
