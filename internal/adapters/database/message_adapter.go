package database

import (
	"context"
	"errors"
	"time"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	mongoclient "github.com/classpulse/backend/internal/infrastructure/clients/mongo"
	apperrors "github.com/classpulse/backend/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MessageAdapter implements direct message persistence in MongoDB.
type MessageAdapter struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMessageAdapter creates a new message adapter.
func NewMessageAdapter(client *mongoclient.Client) repositories.MessageRepository {
	return &MessageAdapter{
		coll: client.Collection(mongoclient.MessagesCollection),
		now:  time.Now,
	}
}

// Create inserts a message. New messages are always unread.
func (a *MessageAdapter) Create(ctx context.Context, message *entities.Message) error {
	if message == nil {
		return apperrors.NewInternalError("message is nil", errors.New("message is nil"))
	}
	if err := message.Validate(); err != nil {
		return apperrors.WrapValidationError(err)
	}

	stamp(&message.ID, &message.Date, a.now)
	message.Read = false

	if _, err := a.coll.InsertOne(ctx, message); err != nil {
		return apperrors.NewInternalError("failed to create message", err)
	}
	return nil
}

// ListForUser streams messages where userID is the sender or the recipient.
// A message to oneself matches both branches of the $or but is returned once.
func (a *MessageAdapter) ListForUser(ctx context.Context, userID string, sort repositories.SortDirection) repositories.Seq[*entities.Message] {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "from", Value: userID}},
		bson.D{{Key: "to", Value: userID}},
	}}}

	return cursorSeq[entities.Message](ctx, "messages", func(ctx context.Context) (*mongo.Cursor, error) {
		return a.coll.Find(ctx, filter, options.Find().SetSort(sortOn("date", sort, repositories.SortAscending)))
	})
}
