package inmem

import (
	"context"
	"sync"

	"github.com/flockchat/flock"
)

// ChannelStore keeps channels in a slice. Ids are dense and channels are
// never deleted, so the slice index is the channel id.
type ChannelStore struct {
	channels []flock.Channel
	mutex    sync.RWMutex
}

func NewChannelStore() ChannelStore {
	return ChannelStore{
		channels: make([]flock.Channel, 0, 16),
		mutex:    sync.RWMutex{},
	}
}

var _ flock.ChannelStore = (*ChannelStore)(nil)

func (s *ChannelStore) Create(ctx context.Context, name flock.ChannelName,
	ownerId flock.UserId, public bool) (flock.Channel, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// id assignment and insert under one lock keeps ids unique.
	channel := flock.Channel{
		Id:       flock.ChannelId(len(s.channels)),
		Name:     name,
		Owners:   []flock.UserId{ownerId},
		Members:  []flock.UserId{},
		Messages: []flock.MessageId{},
		Public:   public,
	}
	s.channels = append(s.channels, channel)
	return channel, nil
}

func (s *ChannelStore) ById(ctx context.Context, channelId flock.ChannelId) (flock.Channel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if channelId < 0 || int(channelId) >= len(s.channels) {
		return flock.Channel{}, flock.ErrChannelNotFound
	}
	return s.channels[channelId], nil
}

func (s *ChannelStore) All(ctx context.Context) ([]flock.ChannelSummary, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summaries := make([]flock.ChannelSummary, len(s.channels))
	for i, c := range s.channels {
		summaries[i] = flock.ChannelSummary{Id: c.Id, Name: c.Name}
	}
	return summaries, nil
}

func (s *ChannelStore) ByUserId(ctx context.Context, userId flock.UserId) ([]flock.ChannelSummary, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summaries := make([]flock.ChannelSummary, 0, len(s.channels))
	for _, c := range s.channels {
		if c.HasMember(userId) {
			summaries = append(summaries, flock.ChannelSummary{Id: c.Id, Name: c.Name})
		}
	}
	return summaries, nil
}
