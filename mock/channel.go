package mock

import (
	"context"

	"github.com/flockchat/flock"
)

type ChannelStore struct {
	CreateFn func(ctx context.Context, name flock.ChannelName,
		ownerId flock.UserId, public bool) (flock.Channel, error)

	ByIdFn func(ctx context.Context, channelId flock.ChannelId) (flock.Channel, error)

	AllFn func(ctx context.Context) ([]flock.ChannelSummary, error)

	ByUserIdFn func(ctx context.Context, userId flock.UserId) ([]flock.ChannelSummary, error)
}

func (s ChannelStore) Create(ctx context.Context, name flock.ChannelName,
	ownerId flock.UserId, public bool) (flock.Channel, error) {
	return s.CreateFn(ctx, name, ownerId, public)
}

func (s ChannelStore) ById(ctx context.Context, channelId flock.ChannelId) (flock.Channel, error) {
	return s.ByIdFn(ctx, channelId)
}

func (s ChannelStore) All(ctx context.Context) ([]flock.ChannelSummary, error) {
	return s.AllFn(ctx)
}

func (s ChannelStore) ByUserId(ctx context.Context, userId flock.UserId) ([]flock.ChannelSummary, error) {
	return s.ByUserIdFn(ctx, userId)
}
