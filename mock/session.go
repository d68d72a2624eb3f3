package mock

import (
	"context"

	"github.com/flockchat/flock"
)

type SessionStore struct {
	RegisterNewFn func(ctx context.Context, userId flock.UserId) (flock.Session, error)

	ByTokenFn func(token string) (flock.Session, error)

	InvalidateFn func(token string) error
}

func (s SessionStore) RegisterNew(ctx context.Context, userId flock.UserId) (flock.Session, error) {
	return s.RegisterNewFn(ctx, userId)
}

func (s SessionStore) ByToken(token string) (flock.Session, error) {
	return s.ByTokenFn(token)
}

func (s SessionStore) Invalidate(token string) error {
	return s.InvalidateFn(token)
}
