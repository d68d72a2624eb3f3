package mock

import (
	"context"

	"github.com/flockchat/flock"
)

type UserStore struct {
	AddFn func(ctx context.Context, user flock.User) error

	ByIdFn func(ctx context.Context, userId flock.UserId) (flock.User, error)

	ByEmailFn func(ctx context.Context, email flock.Email) (flock.User, error)

	ByHandleFn func(ctx context.Context, handle flock.Handle) (flock.User, error)

	UpdateFn func(ctx context.Context, user flock.User) error
}

func (s UserStore) Add(ctx context.Context, user flock.User) error {
	return s.AddFn(ctx, user)
}

func (s UserStore) ById(ctx context.Context, userId flock.UserId) (flock.User, error) {
	return s.ByIdFn(ctx, userId)
}

func (s UserStore) ByEmail(ctx context.Context, email flock.Email) (flock.User, error) {
	return s.ByEmailFn(ctx, email)
}

func (s UserStore) ByHandle(ctx context.Context, handle flock.Handle) (flock.User, error) {
	return s.ByHandleFn(ctx, handle)
}

func (s UserStore) Update(ctx context.Context, user flock.User) error {
	return s.UpdateFn(ctx, user)
}
