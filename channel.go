package flock

import (
	"context"
	"errors"
)

var ErrChannelNotFound = errors.New("channel not found")

type ChannelId int64

// MessageId identifies a message. Message content lives outside this core.
type MessageId int64

type ChannelName string

func (n ChannelName) Valid() bool {
	return len(n) >= 1 && len(n) <= 20
}

type Channel struct {
	Id   ChannelId
	Name ChannelName
	// Owners is never empty; it always contains the creating user.
	Owners   []UserId
	Members  []UserId
	Messages []MessageId
	Public   bool
}

// HasMember reports whether userId is an owner or an ordinary member.
func (c Channel) HasMember(userId UserId) bool {
	for _, id := range c.Owners {
		if id == userId {
			return true
		}
	}
	for _, id := range c.Members {
		if id == userId {
			return true
		}
	}
	return false
}

// ChannelSummary is the listing shape: id and name only.
type ChannelSummary struct {
	Id   ChannelId
	Name ChannelName
}

type ChannelStore interface {
	// Create inserts a channel owned by ownerId with no members or messages.
	// The id equals the channel count at insert time and is assigned under the
	// same lock (or transaction) as the insert, so ids stay dense and unique.
	Create(ctx context.Context, name ChannelName, ownerId UserId, public bool) (Channel, error)

	ById(ctx context.Context, channelId ChannelId) (Channel, error)

	// All returns every channel in ascending id order.
	All(ctx context.Context) ([]ChannelSummary, error)

	// ByUserId returns channels where the user is an owner or a member,
	// in ascending id order.
	ByUserId(ctx context.Context, userId UserId) ([]ChannelSummary, error)
}
