package rest

import (
	"fmt"

	"github.com/flockchat/flock"
	"github.com/gofiber/fiber/v2"
)

type ChannelController struct {
	Store flock.ChannelStore
}

func (c *ChannelController) InstallTo(requestAuthorizer fiber.Handler, app *fiber.App) {
	app.Get("/channels", combineHandlers(requestAuthorizer, c.serveList))
	app.Get("/channels/all", combineHandlers(requestAuthorizer, c.serveListAll))
	app.Post("/channels", combineHandlers(requestAuthorizer, c.serveCreate))
}

type channelSummaryResponse struct {
	ChannelId int64  `json:"channelId"`
	Name      string `json:"name"`
}

func channelsResponse(summaries []flock.ChannelSummary) fiber.Map {
	mapped := make([]channelSummaryResponse, len(summaries))
	for i, s := range summaries {
		mapped[i] = channelSummaryResponse{ChannelId: int64(s.Id), Name: string(s.Name)}
	}
	return fiber.Map{"channels": mapped}
}

// serveList returns channels the caller belongs to, as owner or member.
func (c *ChannelController) serveList(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(flock.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	summaries, err := c.Store.ByUserId(ctx.Context(), user.Id)
	if err != nil {
		return fmt.Errorf("channels by user id: %w", err)
	}
	return ctx.JSON(channelsResponse(summaries))
}

// serveListAll returns every channel; membership is not required.
func (c *ChannelController) serveListAll(ctx *fiber.Ctx) error {
	summaries, err := c.Store.All(ctx.Context())
	if err != nil {
		return fmt.Errorf("all channels: %w", err)
	}
	return ctx.JSON(channelsResponse(summaries))
}

func (c *ChannelController) serveCreate(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(flock.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	body := struct {
		Name   string `json:"name"`
		Public bool   `json:"public"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	name := flock.ChannelName(body.Name)
	if !name.Valid() {
		return flock.ValidationError{Description: "channel name must be between 1 and 20 characters long"}
	}

	channel, err := c.Store.Create(ctx.Context(), name, user.Id, body.Public)
	if err != nil {
		return fmt.Errorf("create channel: %w", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"channelId": int64(channel.Id),
	})
}
