package inmem

import (
	"context"
	"sync"

	"github.com/flockchat/flock"
)

type UserStore struct {
	users map[flock.UserId]flock.User
	mutex sync.RWMutex
}

func NewUserStore() UserStore {
	return UserStore{
		users: map[flock.UserId]flock.User{},
		mutex: sync.RWMutex{},
	}
}

var _ flock.UserStore = (*UserStore)(nil)

func (s *UserStore) Add(ctx context.Context, user flock.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.users[user.Id] = user
	return nil
}

func (s *UserStore) ById(ctx context.Context, userId flock.UserId) (flock.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[userId]
	if !ok {
		return u, flock.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email flock.Email) (flock.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return flock.User{}, flock.ErrUserNotFound
}

func (s *UserStore) ByHandle(ctx context.Context, handle flock.Handle) (flock.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if u.Handle == handle {
			return u, nil
		}
	}
	return flock.User{}, flock.ErrUserNotFound
}

func (s *UserStore) Update(ctx context.Context, user flock.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.users[user.Id]; !ok {
		return flock.ErrUserNotFound
	}
	s.users[user.Id] = user
	return nil
}
