package repositories

import (
	"context"

	"github.com/classpulse/backend/internal/domain/entities"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error

	// ListForUser streams messages the user sent or received, ordered by date.
	ListForUser(ctx context.Context, userID string, sort SortDirection) Seq[*entities.Message]
}
