package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http/httptest"
	"testing"

	"github.com/flockchat/flock"
	"github.com/flockchat/flock/inmem"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// localsAuthorizer injects the user without a session round trip.
func localsAuthorizer(user flock.User) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(userLocalsKey, user)
		return nil
	}
}

func TestChannelCreateAndList(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := inmem.NewChannelStore()
	controller := ChannelController{Store: &store}

	creator := flock.User{Id: 7, Handle: "creator"}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(localsAuthorizer(creator), app)

	createBody, _ := json.Marshal(map[string]interface{}{"name": "general", "public": true})
	req := httptest.NewRequest("POST", "/channels", bytes.NewReader(createBody))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	assert.Equal(fiber.StatusCreated, resp.StatusCode)

	body, err := ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(`{"channelId":0}`, string(body))

	channel, err := store.ById(ctx, 0)
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]flock.UserId{7}, channel.Owners)
	assert.True(channel.Public)

	// creator sees the channel
	req = httptest.NewRequest("GET", "/channels", nil)
	resp, err = app.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	body, err = ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(`{"channels":[{"channelId":0,"name":"general"}]}`, string(body))

	// an outsider sees it in listall but not in their own list
	outsiderApp := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	outsiderController := ChannelController{Store: &store}
	outsiderController.InstallTo(localsAuthorizer(flock.User{Id: 8, Handle: "outsider"}), outsiderApp)

	req = httptest.NewRequest("GET", "/channels", nil)
	resp, err = outsiderApp.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	body, err = ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(`{"channels":[]}`, string(body))

	req = httptest.NewRequest("GET", "/channels/all", nil)
	resp, err = outsiderApp.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	body, err = ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(`{"channels":[{"channelId":0,"name":"general"}]}`, string(body))
}

func TestChannelCreateNameValidation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := inmem.NewChannelStore()
	controller := ChannelController{Store: &store}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(localsAuthorizer(flock.User{Id: 7}), app)

	for _, name := range []string{"", "ch name 21 characters"} {
		createBody, _ := json.Marshal(map[string]interface{}{"name": name, "public": true})
		req := httptest.NewRequest("POST", "/channels", bytes.NewReader(createBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if !assert.NoError(err) {
			return
		}
		defer resp.Body.Close()
		assert.Equal(fiber.StatusBadRequest, resp.StatusCode)

		body, err := ioutil.ReadAll(resp.Body)
		if !assert.NoError(err) {
			return
		}
		assert.Equal(
			JsonErrorMessageResponse("channel name must be between 1 and 20 characters long"),
			string(body))
	}

	// nothing was created
	all, err := store.All(ctx)
	if assert.NoError(err) {
		assert.Equal(0, len(all))
	}
}
