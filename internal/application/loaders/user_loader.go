package loaders

import (
	"context"
	"time"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/graph-gophers/dataloader/v7"
)

const (
	userBatchCapacity = 100
	userBatchWait     = 2 * time.Millisecond
)

// UserLoader batches user lookups made while building a read response.
type UserLoader = dataloader.Loader[string, *entities.User]

// UserThunk resolves a queued user lookup.
type UserThunk = dataloader.Thunk[*entities.User]

// NewUserLoader creates a loader scoped to a single call. An id that matches no
// user resolves to nil without an error.
func NewUserLoader(repo repositories.UserRepository) *UserLoader {
	return dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.User] {
		results := make([]*dataloader.Result[*entities.User], len(keys))
		users, err := repo.GetByIDs(ctx, keys)

		userMap := make(map[string]*entities.User, len(users))
		if err == nil {
			for _, u := range users {
				userMap[u.ID] = u
			}
		}

		for i, key := range keys {
			if err != nil {
				results[i] = &dataloader.Result[*entities.User]{Error: err}
			} else {
				results[i] = &dataloader.Result[*entities.User]{Data: userMap[key]}
			}
		}
		return results
	},
		dataloader.WithBatchCapacity[string, *entities.User](userBatchCapacity),
		dataloader.WithWait[string, *entities.User](userBatchWait),
	)
}
