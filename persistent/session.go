package persistent

import (
	"context"
	crand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flockchat/flock"
	"github.com/google/uuid"
	"github.com/tidwall/buntdb"
)

const sessionTTL = 30 * 24 * time.Hour // 30 days

type Session struct {
	Id        string    `json:"id"`
	UserId    int64     `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) ToDomain() flock.Session {
	return flock.Session{
		Id:        s.Id,
		UserId:    flock.UserId(s.UserId),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

// SessionStore keeps sessions in buntdb keyed by token, expired by TTL.
type SessionStore struct {
	Buntdb *buntdb.DB
}

var _ flock.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) RegisterNew(ctx context.Context, userId flock.UserId) (flock.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return flock.Session{}, fmt.Errorf("generate token: %w", err)
	}

	session := Session{
		Id:        uuid.New().String(),
		UserId:    int64(userId),
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	serialized, err := json.Marshal(&session)
	if err != nil {
		return flock.Session{}, fmt.Errorf("session serialize: %w", err)
	}

	err = s.Buntdb.Update(func(tx *buntdb.Tx) error {
		options := &buntdb.SetOptions{Expires: true, TTL: sessionTTL}
		_, _, err := tx.Set("session:"+token, string(serialized), options)
		return err
	})
	if err != nil {
		return flock.Session{}, fmt.Errorf("bunt update: %w", err)
	}
	return session.ToDomain(), nil
}

func (s *SessionStore) ByToken(token string) (flock.Session, error) {
	var session Session
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		serialized, err := tx.Get("session:" + token)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(serialized), &session)
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return flock.Session{}, flock.ErrSessionNotFound
		}
		return flock.Session{}, fmt.Errorf("bunt view: %w", err)
	}
	return session.ToDomain(), nil
}

func (s *SessionStore) Invalidate(token string) error {
	err := s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete("session:" + token)
		return err
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return flock.ErrSessionNotFound
		}
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func generateSessionToken() (string, error) {
	const tokenBytes = 60
	rawToken := make([]byte, tokenBytes)
	// crypto/rand - getentropy(2)
	bytesRead, err := crand.Read(rawToken)
	if err != nil {
		return "", fmt.Errorf("rand read: %w", err)
	}
	if bytesRead != tokenBytes {
		return "", fmt.Errorf("bytes read %d / required %d", bytesRead, tokenBytes)
	}
	token := base64.StdEncoding.EncodeToString(rawToken)
	// ":" separates key segments in our buntdb keys; keep tokens free of it.
	return strings.Replace(token, ":", "_", -1), nil
}
