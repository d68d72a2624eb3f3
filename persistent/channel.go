package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flockchat/flock"
	"github.com/uptrace/bun"
)

type Channel struct {
	bun.BaseModel `bun:"table:channel"`

	Id       int64   `bun:",pk"`
	Name     string  `bun:",notnull"`
	Owners   []int64 `bun:",notnull,array"`
	Members  []int64 `bun:",notnull,array"`
	Messages []int64 `bun:",notnull,array"`
	Public   bool    `bun:",notnull"`
}

func (c Channel) ToDomain() flock.Channel {
	return flock.Channel{
		Id:       flock.ChannelId(c.Id),
		Name:     flock.ChannelName(c.Name),
		Owners:   mapUserIds(c.Owners),
		Members:  mapUserIds(c.Members),
		Messages: mapMessageIds(c.Messages),
		Public:   c.Public,
	}
}

func mapUserIds(raw []int64) []flock.UserId {
	ids := make([]flock.UserId, len(raw))
	for i, id := range raw {
		ids[i] = flock.UserId(id)
	}
	return ids
}

func mapMessageIds(raw []int64) []flock.MessageId {
	ids := make([]flock.MessageId, len(raw))
	for i, id := range raw {
		ids[i] = flock.MessageId(id)
	}
	return ids
}

type ChannelStore struct {
	DB *bun.DB
}

var _ flock.ChannelStore = (*ChannelStore)(nil)

// Create assigns the id from the channel count inside the same transaction
// as the insert. Channels are never deleted, so ids stay dense.
func (s *ChannelStore) Create(ctx context.Context, name flock.ChannelName,
	ownerId flock.UserId, public bool) (flock.Channel, error) {
	model := Channel{
		Name:     string(name),
		Owners:   []int64{int64(ownerId)},
		Members:  []int64{},
		Messages: []int64{},
		Public:   public,
	}
	err := s.DB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable},
		func(ctx context.Context, tx bun.Tx) error {
			count, err := tx.NewSelect().
				Model((*Channel)(nil)).
				Count(ctx)
			if err != nil {
				return fmt.Errorf("count channels: %w", err)
			}
			model.Id = int64(count)
			_, err = tx.NewInsert().
				Model(&model).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("insert channel: %w", err)
			}
			return nil
		})
	if err != nil {
		return flock.Channel{}, err
	}
	return model.ToDomain(), nil
}

func (s *ChannelStore) ById(ctx context.Context, channelId flock.ChannelId) (flock.Channel, error) {
	channel := new(Channel)
	err := s.DB.NewSelect().
		Model(channel).
		Where(`id=?`, int64(channelId)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return flock.Channel{}, flock.ErrChannelNotFound
		}
		return flock.Channel{}, fmt.Errorf("select channel: %w", err)
	}
	return channel.ToDomain(), nil
}

func (s *ChannelStore) All(ctx context.Context) ([]flock.ChannelSummary, error) {
	var channels []Channel
	err := s.DB.NewSelect().
		Model(&channels).
		Column("id", "name").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select channels: %w", err)
	}
	return summaries(channels), nil
}

func (s *ChannelStore) ByUserId(ctx context.Context, userId flock.UserId) ([]flock.ChannelSummary, error) {
	var channels []Channel
	err := s.DB.NewSelect().
		Model(&channels).
		Column("id", "name").
		Where(`?=ANY(owners)`, int64(userId)).
		WhereOr(`?=ANY(members)`, int64(userId)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select member channels: %w", err)
	}
	return summaries(channels), nil
}

func summaries(channels []Channel) []flock.ChannelSummary {
	mapped := make([]flock.ChannelSummary, len(channels))
	for i, c := range channels {
		mapped[i] = flock.ChannelSummary{Id: flock.ChannelId(c.Id), Name: flock.ChannelName(c.Name)}
	}
	return mapped
}
