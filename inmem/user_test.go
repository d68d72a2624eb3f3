package inmem

import (
	"context"
	"testing"

	"github.com/flockchat/flock"
	"github.com/stretchr/testify/assert"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)

	s := NewUserStore()
	_, err := s.ById(ctx, 1)
	assert.Equal(flock.ErrUserNotFound, err)

	u := flock.User{
		Id:        1,
		Email:     "aleja@rejwu.pl",
		FirstName: "Aleja",
		LastName:  "Rejwu",
		Handle:    "indecorum",
	}
	if !assert.NoError(s.Add(ctx, u)) {
		return
	}

	ufound, err := s.ById(ctx, u.Id)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(u, ufound)

	ufound, err = s.ByEmail(ctx, "aleja@rejwu.pl")
	if assert.NoError(err) {
		assert.Equal(u.Id, ufound.Id)
	}
	_, err = s.ByEmail(ctx, "other@rejwu.pl")
	assert.Equal(flock.ErrUserNotFound, err)

	ufound, err = s.ByHandle(ctx, "indecorum")
	if assert.NoError(err) {
		assert.Equal(u.Id, ufound.Id)
	}
	_, err = s.ByHandle(ctx, "decorum")
	assert.Equal(flock.ErrUserNotFound, err)
}

func TestUserStoreUpdate(t *testing.T) {
	ctx := context.Background()
	assert := assert.New(t)

	s := NewUserStore()
	err := s.Update(ctx, flock.User{Id: 3})
	assert.Equal(flock.ErrUserNotFound, err)

	u := flock.User{Id: 3, Email: "e@ma.il", Handle: "mk"}
	if !assert.NoError(s.Add(ctx, u)) {
		return
	}

	u.Handle = "makin"
	u.AvatarUrl = "/imgurl/abc.png"
	if !assert.NoError(s.Update(ctx, u)) {
		return
	}

	ufound, err := s.ById(ctx, u.Id)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(flock.Handle("makin"), ufound.Handle)
	assert.Equal("/imgurl/abc.png", ufound.AvatarUrl)
}
