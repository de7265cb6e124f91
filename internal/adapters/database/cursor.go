package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/classpulse/backend/internal/domain/repositories"
	apperrors "github.com/classpulse/backend/pkg/errors"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// cursorSeq adapts a query to a one-shot lazy sequence. open runs when the
// caller starts ranging; a second range yields ErrSequenceConsumed.
func cursorSeq[T any](ctx context.Context, what string, open func(ctx context.Context) (*mongo.Cursor, error)) repositories.Seq[*T] {
	var consumed atomic.Bool

	return func(yield func(*T, error) bool) {
		if consumed.Swap(true) {
			yield(nil, repositories.ErrSequenceConsumed)
			return
		}

		cursor, err := open(ctx)
		if err != nil {
			yield(nil, apperrors.NewInternalError("failed to query "+what, err))
			return
		}
		defer cursor.Close(context.WithoutCancel(ctx))

		for cursor.Next(ctx) {
			var doc T
			if err := cursor.Decode(&doc); err != nil {
				yield(nil, apperrors.NewInternalError("failed to decode "+what, err))
				return
			}
			if !yield(&doc, nil) {
				return
			}
		}

		if err := cursor.Err(); err != nil {
			yield(nil, apperrors.NewInternalError("failed to iterate "+what, err))
		}
	}
}

// stamp fills a missing id and timestamp the way every insert does.
func stamp(id *string, ts *time.Time, now func() time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	if ts.IsZero() {
		*ts = now().UTC()
	}
}

// sortOn builds a sort document on field with _id as tie-breaker so equal
// timestamps still come back in a stable order.
func sortOn(field string, dir, fallback repositories.SortDirection) bson.D {
	if dir != repositories.SortAscending && dir != repositories.SortDescending {
		dir = fallback
	}
	return bson.D{{Key: field, Value: int(dir)}, {Key: "_id", Value: int(dir)}}
}
