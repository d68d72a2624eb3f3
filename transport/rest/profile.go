package rest

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/flockchat/flock"
	"github.com/flockchat/flock/avatar"
	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Users  flock.UserStore
	Avatar *avatar.Service
}

func (c *ProfileController) InstallTo(requestAuthorizer fiber.Handler, app *fiber.App) {
	app.Get("/profile/:user_id", combineHandlers(requestAuthorizer, c.serveProfile))
	app.Put("/profile/name", combineHandlers(requestAuthorizer, c.serveSetName))
	app.Put("/profile/email", combineHandlers(requestAuthorizer, c.serveSetEmail))
	app.Put("/profile/handle", combineHandlers(requestAuthorizer, c.serveSetHandle))
	app.Put("/profile/avatar", combineHandlers(requestAuthorizer, c.serveSetAvatar))
}

func (c *ProfileController) serveProfile(ctx *fiber.Ctx) error {
	userIdStr := ctx.Params("user_id")
	if userIdStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no user id")
	}
	userId, err := strconv.ParseInt(userIdStr, 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	user, err := c.Users.ById(ctx.Context(), flock.UserId(userId))
	if err != nil {
		if errors.Is(err, flock.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		} else {
			return fmt.Errorf("get user by id: %w", err)
		}
	}

	type ProfileResponse struct {
		UserId    int64  `json:"userId"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Handle    string `json:"handle"`
		AvatarUrl string `json:"avatarUrl"`
	}
	return ctx.JSON(ProfileResponse{
		UserId:    int64(user.Id),
		Email:     string(user.Email),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Handle:    string(user.Handle),
		AvatarUrl: user.AvatarUrl,
	})
}

func (c *ProfileController) serveSetName(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(flock.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	body := struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if !flock.NameValid(body.FirstName) || !flock.NameValid(body.LastName) {
		return flock.ValidationError{Description: "names must be between 1 and 50 characters"}
	}

	user.FirstName = body.FirstName
	user.LastName = body.LastName
	if err := c.Users.Update(ctx.Context(), user); err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	return nil
}

func (c *ProfileController) serveSetEmail(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(flock.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	body := struct {
		Email string `json:"email"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	email := flock.Email(body.Email)
	acceptable, err := flock.EmailAcceptable(ctx.Context(), c.Users, user.Id, email)
	if err != nil {
		return fmt.Errorf("email acceptable: %w", err)
	}
	if !acceptable {
		return flock.ValidationError{Description: "email invalid or already being used"}
	}

	user.Email = email
	if err := c.Users.Update(ctx.Context(), user); err != nil {
		return fmt.Errorf("update user email: %w", err)
	}
	return nil
}

func (c *ProfileController) serveSetHandle(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(flock.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	body := struct {
		Handle string `json:"handle"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	handle := flock.Handle(body.Handle)
	acceptable, err := flock.HandleAcceptable(ctx.Context(), c.Users, user.Id, handle)
	if err != nil {
		return fmt.Errorf("handle acceptable: %w", err)
	}
	if !acceptable {
		return flock.ValidationError{Description: "handle invalid or already being used"}
	}

	user.Handle = handle
	if err := c.Users.Update(ctx.Context(), user); err != nil {
		return fmt.Errorf("update user handle: %w", err)
	}
	return nil
}

func (c *ProfileController) serveSetAvatar(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(flock.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	body := struct {
		ImgUrl string `json:"imgUrl"`
		XStart int    `json:"xStart"`
		YStart int    `json:"yStart"`
		XEnd   int    `json:"xEnd"`
		YEnd   int    `json:"yEnd"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	return c.Avatar.SetImage(ctx.Context(), user.Id, body.ImgUrl, avatar.Rect{
		XStart: body.XStart,
		YStart: body.YStart,
		XEnd:   body.XEnd,
		YEnd:   body.YEnd,
	})
}
