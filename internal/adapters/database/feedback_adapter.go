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

// FeedbackAdapter implements feedback persistence in MongoDB.
type FeedbackAdapter struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *mongoclient.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		coll: client.Collection(mongoclient.FeedbackCollection),
		now:  time.Now,
	}
}

// Create inserts a feedback record.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", errors.New("feedback is nil"))
	}
	if err := feedback.Validate(); err != nil {
		return apperrors.WrapValidationError(err)
	}

	stamp(&feedback.ID, &feedback.CreatedAt, a.now)
	feedback.UpdatedAt = feedback.CreatedAt
	if feedback.Date.IsZero() {
		feedback.Date = feedback.CreatedAt
	}

	if _, err := a.coll.InsertOne(ctx, feedback); err != nil {
		return apperrors.NewInternalError("failed to create feedback", err)
	}
	return nil
}

// List streams feedback ordered by createdAt.
func (a *FeedbackAdapter) List(ctx context.Context, filter repositories.FeedbackFilter) repositories.Seq[*entities.Feedback] {
	query := bson.D{}
	if !filter.Since.IsZero() {
		query = append(query, bson.E{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: filter.Since}}})
	}
	sort := sortOn("createdAt", filter.Sort, repositories.SortDescending)

	return cursorSeq[entities.Feedback](ctx, "feedback", func(ctx context.Context) (*mongo.Cursor, error) {
		return a.coll.Find(ctx, query, options.Find().SetSort(sort))
	})
}

type moodCount struct {
	Mood  entities.Mood `bson:"_id"`
	Count int64         `bson:"count"`
}

// CountByMood groups feedback created at or after since by mood.
func (a *FeedbackAdapter) CountByMood(ctx context.Context, since time.Time) (map[entities.Mood]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$mood"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := a.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate feedback", err)
	}

	var rows []moodCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, apperrors.NewInternalError("failed to decode feedback counts", err)
	}

	counts := make(map[entities.Mood]int64, len(rows))
	for _, row := range rows {
		counts[row.Mood] = row.Count
	}
	return counts, nil
}
