package api

import (
	"github.com/mossline/chronicle/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
)

func getFeed(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 10)
	tag := c.Query("tag")

	feed, err := services.GetFeed(page, size, tag)
	if err != nil {
		return err
	}

	return c.JSON(feed)
}
