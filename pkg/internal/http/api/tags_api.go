package api

import (
	"github.com/mossline/chronicle/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
)

func listTags(c *fiber.Ctx) error {
	tags, err := services.ListTags()
	if err != nil {
		return err
	}

	return c.JSON(tags)
}
