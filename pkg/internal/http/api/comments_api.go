package api

import (
	"github.com/mossline/chronicle/pkg/internal/http/exts"
	"github.com/mossline/chronicle/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
)

func createComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a positive number")
	}

	var data struct {
		Text string `json:"text" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.AddComment(uint(id), data.Text)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func listComments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a positive number")
	}

	comments, err := services.ListComments(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(comments)
}
