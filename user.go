package flock

import (
	"context"
	"errors"
	"net/mail"
)

var ErrUserNotFound = errors.New("user not found")

type UserId int64

type Email string

// Valid reports whether the address parses as a bare RFC 5322 address.
func (e Email) Valid() bool {
	addr, err := mail.ParseAddress(string(e))
	return err == nil && addr.Address == string(e)
}

type Handle string

func (h Handle) Valid() bool {
	return len(h) >= 2 && len(h) <= 20
}

type User struct {
	Id        UserId
	Email     Email
	FirstName string
	LastName  string
	Handle    Handle
	// Path to the cropped avatar e.g. "/imgurl/<name>.png". Empty when unset.
	AvatarUrl string
}

// NameValid reports whether a first or last name has an allowed length.
func NameValid(name string) bool {
	return len(name) >= 1 && len(name) <= 50
}

type UserStore interface {
	// Add inserts a user under its externally assigned id.
	Add(ctx context.Context, user User) error

	ById(ctx context.Context, userId UserId) (User, error)

	// ByEmail returns the user currently owning email or ErrUserNotFound.
	ByEmail(ctx context.Context, email Email) (User, error)

	// ByHandle returns the user currently using handle or ErrUserNotFound.
	ByHandle(ctx context.Context, handle Handle) (User, error)

	Update(ctx context.Context, user User) error
}

// HandleAcceptable reports whether userId may take handle: either it already
// is their handle, or it is valid and no other user holds it.
func HandleAcceptable(ctx context.Context, store UserStore, userId UserId, handle Handle) (bool, error) {
	user, err := store.ById(ctx, userId)
	if err != nil {
		return false, err
	}
	if user.Handle == handle {
		return true, nil
	}
	if !handle.Valid() {
		return false, nil
	}
	_, err = store.ByHandle(ctx, handle)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrUserNotFound):
		return true, nil
	default:
		return false, err
	}
}

// EmailAcceptable reports whether userId may take email: either they own it
// already, or it is well-formed and unowned.
func EmailAcceptable(ctx context.Context, store UserStore, userId UserId, email Email) (bool, error) {
	owner, err := store.ByEmail(ctx, email)
	switch {
	case err == nil:
		return owner.Id == userId, nil
	case errors.Is(err, ErrUserNotFound):
		return email.Valid(), nil
	default:
		return false, err
	}
}
