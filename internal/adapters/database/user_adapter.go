package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	mongoclient "github.com/classpulse/backend/internal/infrastructure/clients/mongo"
	apperrors "github.com/classpulse/backend/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// UserAdapter implements user persistence in MongoDB.
type UserAdapter struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *mongoclient.Client) repositories.UserRepository {
	return &UserAdapter{
		coll: client.Collection(mongoclient.UsersCollection),
		now:  time.Now,
	}
}

// Create inserts a user. Emails are stored lower-cased and trimmed so the
// unique index catches case variants.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	if user == nil {
		return apperrors.NewInternalError("user is nil", errors.New("user is nil"))
	}

	user.Email = normalizeEmail(user.Email)
	if err := user.Validate(); err != nil {
		return apperrors.WrapValidationError(err)
	}

	stamp(&user.ID, &user.CreatedAt, a.now)
	user.UpdatedAt = user.CreatedAt

	if _, err := a.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("Email already registered")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.findOne(ctx, bson.D{{Key: "email", Value: normalizeEmail(email)}})
}

// GetByIDs retrieves the users that exist among ids
func (a *UserAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	cursor, err := a.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query users", err)
	}

	users := make([]*entities.User, 0, len(ids))
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.NewInternalError("failed to decode users", err)
	}
	return users, nil
}

func (a *UserAdapter) findOne(ctx context.Context, filter bson.D) (*entities.User, error) {
	var user entities.User
	err := a.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
