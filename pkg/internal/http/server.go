package http

import (
	"errors"

	"github.com/mossline/chronicle/pkg/internal/http/api"
	"github.com/mossline/chronicle/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Chronicle",
		AppName:               "Chronicle",
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		ErrorHandler:          translateError,
	})

	api.MapAPIs(app, "/api")

	return &App{app}
}

// translateError maps the store's error taxonomy onto HTTP statuses; the
// store layer itself never speaks HTTP.
func translateError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	var validation *services.ValidationError
	var conflict *services.ConflictError

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &validation):
		status = fiber.StatusBadRequest
	case errors.As(err, &notFound):
		status = fiber.StatusNotFound
	case errors.As(err, &conflict):
		status = fiber.StatusConflict
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
