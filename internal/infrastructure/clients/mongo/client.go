package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/classpulse/backend/internal/infrastructure/observability"
	"github.com/classpulse/backend/pkg/config"
	"github.com/classpulse/backend/pkg/retry"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names
const (
	UsersCollection    = "users"
	FeedbackCollection = "feedbacks"
	ReviewsCollection  = "reviews"
	MessagesCollection = "messages"
)

// Client represents a MongoDB client bound to one database
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects to MongoDB and verifies the connection with exponential
// backoff. Command durations are reported to metrics when it is non-nil.
func NewClient(ctx context.Context, cfg *config.MongoConfig, metrics *observability.Metrics) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMonitor(commandMonitor(metrics))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	err = retry.Do(ctx, retry.DefaultConfig(), "MongoDB",
		func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return client.Ping(pingCtx, readpref.Primary())
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("MongoDB ping failed")
		},
	)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to MongoDB after retries: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("Successfully connected to MongoDB")
	return &Client{client: client, db: client.Database(cfg.Database)}, nil
}

// Collection returns a handle on a collection of the configured database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// EnsureIndexes creates the indexes the adapters rely on. The unique index on
// users.email backs the duplicate-email conflict.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		},
		FeedbackCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "mood", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ReviewsCollection: {
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		MessagesCollection: {
			{Keys: bson.D{{Key: "from", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "to", Value: 1}, {Key: "date", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := c.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// Ping verifies the connection to MongoDB
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Drop removes the configured database. Used by integration tests.
func (c *Client) Drop(ctx context.Context) error {
	return c.db.Drop(ctx)
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func commandMonitor(metrics *observability.Metrics) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			observability.RecordDBMetric(ctx, metrics, e.CommandName, true, e.Duration)
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			observability.RecordDBMetric(ctx, metrics, e.CommandName, false, e.Duration)
		},
	}
}
