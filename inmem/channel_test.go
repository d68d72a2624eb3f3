package inmem

import (
	"context"
	"testing"

	"github.com/flockchat/flock"
	"github.com/stretchr/testify/assert"
)

func TestChannelStoreCreate(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)

	s := NewChannelStore()

	first, err := s.Create(ctx, "general", 7, true)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(flock.ChannelId(0), first.Id)
	assert.Equal([]flock.UserId{7}, first.Owners)
	assert.Empty(first.Members)
	assert.Empty(first.Messages)
	assert.True(first.Public)

	second, err := s.Create(ctx, "random", 8, false)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(flock.ChannelId(1), second.Id)

	found, err := s.ById(ctx, second.Id)
	if assert.NoError(err) {
		assert.Equal(second, found)
	}
	_, err = s.ById(ctx, 2)
	assert.Equal(flock.ErrChannelNotFound, err)
}

func TestChannelStoreListings(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)

	s := NewChannelStore()
	names := []flock.ChannelName{"general", "random", "help"}
	for _, name := range names {
		_, err := s.Create(ctx, name, 7, true)
		if !assert.NoError(err) {
			return
		}
	}

	all, err := s.All(ctx)
	if !assert.NoError(err) {
		return
	}
	if !assert.Equal(3, len(all)) {
		return
	}
	for i, summary := range all {
		assert.Equal(flock.ChannelId(i), summary.Id)
		assert.Equal(names[i], summary.Name)
	}
}

func TestChannelStoreByUserId(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)

	s := NewChannelStore()
	owned, err := s.Create(ctx, "general", 7, true)
	if !assert.NoError(err) {
		return
	}
	_, err = s.Create(ctx, "other", 8, true)
	if !assert.NoError(err) {
		return
	}

	mine, err := s.ByUserId(ctx, 7)
	if !assert.NoError(err) {
		return
	}
	if assert.Equal(1, len(mine)) {
		assert.Equal(owned.Id, mine[0].Id)
		assert.Equal(flock.ChannelName("general"), mine[0].Name)
	}

	none, err := s.ByUserId(ctx, 9)
	if assert.NoError(err) {
		assert.Equal(0, len(none))
	}
}
