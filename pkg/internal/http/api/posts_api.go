package api

import (
	"github.com/mossline/chronicle/pkg/internal/http/exts"
	"github.com/mossline/chronicle/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
)

func createPost(c *fiber.Ctx) error {
	var data struct {
		Name string   `json:"name" validate:"required"`
		Text string   `json:"text" validate:"required"`
		Tags []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(data.Name, data.Text, data.Tags)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func getPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a positive number")
	}

	item, err := services.GetPostDetail(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a positive number")
	}

	if err := services.DeletePost(uint(id)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func likePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a positive number")
	}

	count, err := services.IncrementLikes(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"likes": count,
	})
}
