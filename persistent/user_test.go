package persistent

import (
	"context"
	"testing"

	"github.com/flockchat/flock"
	"github.com/flockchat/flock/pgdb"
	"github.com/stretchr/testify/assert"
)

func TestUserStoreCrud(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := pgdb.OpenTest(ctx)
	defer db.Close()
	store := UserStore{DB: db}

	user := flock.User{
		Id:        101,
		Email:     "user@rol.es",
		FirstName: "Ala",
		LastName:  "Makota",
		Handle:    "alamakota",
	}
	if !assert.NoError(store.Add(ctx, user)) {
		return
	}

	found, err := store.ById(ctx, user.Id)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(user, found)

	found, err = store.ByEmail(ctx, "user@rol.es")
	if assert.NoError(err) {
		assert.Equal(user.Id, found.Id)
	}
	found, err = store.ByHandle(ctx, "alamakota")
	if assert.NoError(err) {
		assert.Equal(user.Id, found.Id)
	}

	_, err = store.ById(ctx, 94821)
	assert.Equal(flock.ErrUserNotFound, err)
	_, err = store.ByEmail(ctx, "nobody@rol.es")
	assert.Equal(flock.ErrUserNotFound, err)
	_, err = store.ByHandle(ctx, "nobody")
	assert.Equal(flock.ErrUserNotFound, err)
}

func TestUserStoreUpdate(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := pgdb.OpenTest(ctx)
	defer db.Close()
	store := UserStore{DB: db}

	user := flock.User{Id: 102, Email: "u@pd.ate", FirstName: "U", LastName: "P", Handle: "update_me"}
	if !assert.NoError(store.Add(ctx, user)) {
		return
	}

	user.Handle = "updated"
	user.AvatarUrl = "/imgurl/abc.png"
	if !assert.NoError(store.Update(ctx, user)) {
		return
	}

	found, err := store.ById(ctx, user.Id)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(flock.Handle("updated"), found.Handle)
	assert.Equal("/imgurl/abc.png", found.AvatarUrl)

	err = store.Update(ctx, flock.User{Id: 94821, Email: "g@ho.st", Handle: "ghost"})
	assert.Equal(flock.ErrUserNotFound, err)
}
