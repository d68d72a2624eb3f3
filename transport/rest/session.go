package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flockchat/flock"
	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "session"
const userLocalsKey = "user"

// RequestAuthorizer resolves the bearer token to a session and its user and
// stores both in request locals. Unknown and expired tokens get 401.
func RequestAuthorizer(sessionStore flock.SessionStore, userStore flock.UserStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := ctx.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return fiber.ErrUnauthorized
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			return fiber.NewError(fiber.ErrBadRequest.Code, "invalid auth type")
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		session, err := sessionStore.ByToken(token)
		if err != nil {
			if errors.Is(err, flock.ErrSessionNotFound) {
				return fiber.ErrUnauthorized
			} else {
				return fmt.Errorf("session by token: %w", err)
			}
		}
		user, err := userStore.ById(ctx.Context(), session.UserId)
		if err != nil {
			return fmt.Errorf("retrieve user by id: %w", err)
		}

		requestLog(ctx).
			WithField("user_id", user.Id).
			Infoln("Authorized access.")

		ctx.Locals(sessionLocalsKey, session)
		ctx.Locals(userLocalsKey, user)
		return nil
	}
}
