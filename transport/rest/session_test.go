package rest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/flockchat/flock"
	"github.com/flockchat/flock/mock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequestAuthorizer(t *testing.T) {
	assert := assert.New(t)

	user := flock.User{Id: 21, Email: "e@ma.il", Handle: "makin"}
	sessionStore := mock.SessionStore{
		ByTokenFn: func(token string) (flock.Session, error) {
			if token == "valid token" {
				return flock.Session{Id: "sid", UserId: user.Id, Token: token}, nil
			}
			return flock.Session{}, flock.ErrSessionNotFound
		},
	}
	userStore := mock.UserStore{
		ByIdFn: func(ctx context.Context, userId flock.UserId) (flock.User, error) {
			if userId == user.Id {
				return user, nil
			}
			return flock.User{}, flock.ErrUserNotFound
		},
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	authorized := flock.User{}
	app.Get("/whoami", combineHandlers(RequestAuthorizer(sessionStore, userStore),
		func(ctx *fiber.Ctx) error {
			authorized = ctx.Locals(userLocalsKey).(flock.User)
			return nil
		}))

	cases := []struct {
		name       string
		auth       string
		statusCode int
	}{
		{name: "missing header", auth: "", statusCode: fiber.StatusUnauthorized},
		{name: "invalid auth type", auth: "Basic dXNlcg==", statusCode: fiber.StatusBadRequest},
		{name: "unknown token", auth: "Bearer made up", statusCode: fiber.StatusUnauthorized},
		{name: "valid token", auth: "Bearer valid token", statusCode: fiber.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if c.auth != "" {
			req.Header.Set(fiber.HeaderAuthorization, c.auth)
		}
		resp, err := app.Test(req)
		if !assert.NoError(err, c.name) {
			continue
		}
		resp.Body.Close()
		assert.Equal(c.statusCode, resp.StatusCode, c.name)
	}
	assert.Equal(user, authorized)
}
