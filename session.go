package flock

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	Id        string
	UserId    UserId
	Token     string
	ExpiresAt time.Time
}

// SessionStore resolves opaque tokens to users. Token issuance flows
// (registration, login) live outside this module; RegisterNew exists so that
// an issuer - or a test - can mint sessions at all.
type SessionStore interface {
	RegisterNew(ctx context.Context, userId UserId) (Session, error)

	// ByToken returns ErrSessionNotFound for unknown or expired tokens.
	ByToken(token string) (Session, error)

	Invalidate(token string) error
}
