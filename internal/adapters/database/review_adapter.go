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

// ReviewAdapter implements review persistence in MongoDB.
type ReviewAdapter struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *mongoclient.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		coll: client.Collection(mongoclient.ReviewsCollection),
		now:  time.Now,
	}
}

// Create inserts a review. The author reference is stored as given.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewInternalError("review is nil", errors.New("review is nil"))
	}
	if err := review.Validate(); err != nil {
		return apperrors.WrapValidationError(err)
	}

	stamp(&review.ID, &review.Date, a.now)

	if _, err := a.coll.InsertOne(ctx, review); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// List streams all reviews ordered by date.
func (a *ReviewAdapter) List(ctx context.Context, sort repositories.SortDirection) repositories.Seq[*entities.Review] {
	return cursorSeq[entities.Review](ctx, "reviews", func(ctx context.Context) (*mongo.Cursor, error) {
		return a.coll.Find(ctx, bson.D{}, options.Find().SetSort(sortOn("date", sort, repositories.SortDescending)))
	})
}
