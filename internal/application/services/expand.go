package services

import (
	"context"

	"github.com/classpulse/backend/internal/application/loaders"
	"github.com/classpulse/backend/internal/domain/entities"
)

// userRef is a queued user lookup, resolved after the record stream is drained.
type userRef struct {
	id    string
	thunk loaders.UserThunk
}

func queueUser(ctx context.Context, loader *loaders.UserLoader, id string) userRef {
	if id == "" {
		return userRef{}
	}
	return userRef{id: id, thunk: loader.Load(ctx, id)}
}

// resolve returns the projected user, or nil when the reference is empty or
// points at a user that no longer exists.
func (r userRef) resolve(p entities.UserProjection) (*entities.UserSummary, error) {
	if r.thunk == nil {
		return nil, nil
	}
	user, err := r.thunk()
	if err != nil {
		return nil, err
	}
	return entities.Summarize(user, p), nil
}
