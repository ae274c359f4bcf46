package api

import "github.com/gofiber/fiber/v2"

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL)
	{
		api.Get("/feed", getFeed)
		api.Get("/tags", listTags)

		posts := api.Group("/posts")
		{
			posts.Post("/", createPost)
			posts.Get("/:postId", getPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/like", likePost)
			posts.Get("/:postId/comments", listComments)
			posts.Post("/:postId/comments", createComment)
		}
	}
}
