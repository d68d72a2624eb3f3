package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flockchat/flock"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:user"`

	Id        int64  `bun:",pk"`
	Email     string `bun:"email,notnull,unique"`
	FirstName string `bun:",notnull"`
	LastName  string `bun:",notnull"`
	Handle    string `bun:",notnull,unique"`
	AvatarUrl string
}

func (u User) ToDomain() flock.User {
	return flock.User{
		Id:        flock.UserId(u.Id),
		Email:     flock.Email(u.Email),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Handle:    flock.Handle(u.Handle),
		AvatarUrl: u.AvatarUrl,
	}
}

func fromDomain(u flock.User) User {
	return User{
		Id:        int64(u.Id),
		Email:     string(u.Email),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Handle:    string(u.Handle),
		AvatarUrl: u.AvatarUrl,
	}
}

type UserStore struct {
	DB *bun.DB
}

var _ flock.UserStore = (*UserStore)(nil)

func (s *UserStore) Add(ctx context.Context, user flock.User) error {
	model := fromDomain(user)
	_, err := s.DB.NewInsert().
		Model(&model).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) ById(ctx context.Context, userId flock.UserId) (flock.User, error) {
	return s.selectOne(ctx, `id=?`, int64(userId))
}

func (s *UserStore) ByEmail(ctx context.Context, email flock.Email) (flock.User, error) {
	return s.selectOne(ctx, `email=?`, string(email))
}

func (s *UserStore) ByHandle(ctx context.Context, handle flock.Handle) (flock.User, error) {
	return s.selectOne(ctx, `handle=?`, string(handle))
}

func (s *UserStore) selectOne(ctx context.Context, where string, arg interface{}) (flock.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where(where, arg).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return flock.User{}, flock.ErrUserNotFound
		}
		return flock.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}

func (s *UserStore) Update(ctx context.Context, user flock.User) error {
	model := fromDomain(user)
	result, err := s.DB.NewUpdate().
		Model(&model).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return flock.ErrUserNotFound
	}
	return nil
}
