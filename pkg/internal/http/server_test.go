package http

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	localCache "github.com/mossline/chronicle/pkg/internal/cache"
	"github.com/mossline/chronicle/pkg/internal/database"
	"github.com/mossline/chronicle/pkg/internal/models"
	"github.com/mossline/chronicle/pkg/internal/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigration(db))
	database.C = db

	require.NoError(t, localCache.Setup())

	return NewServer().app
}

func decodeBody(t *testing.T, body io.Reader, out any) {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, jsoniter.Unmarshal(raw, out))
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	app := newTestServer(t)

	// Publish
	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"name":"A","text":"a","tags":["cats"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Post
	decodeBody(t, resp.Body, &created)
	require.NotZero(t, created.ID)

	// Like twice
	for want := int64(1); want <= 2; want++ {
		resp, err = app.Test(httptest.NewRequest("POST", "/api/posts/1/like", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var likes struct {
			Likes int64 `json:"likes"`
		}
		decodeBody(t, resp.Body, &likes)
		assert.Equal(t, want, likes.Likes)
	}

	// Comment
	req = httptest.NewRequest("POST", "/api/posts/1/comments", strings.NewReader(`{"text":"nice"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Detail carries tags, comments and the fresh counter
	resp, err = app.Test(httptest.NewRequest("GET", "/api/posts/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var detail models.Post
	decodeBody(t, resp.Body, &detail)
	assert.EqualValues(t, 2, detail.Likes)
	require.Len(t, detail.Tags, 1)
	require.Len(t, detail.Comments, 1)

	// Delete, then every read path answers 404
	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/posts/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/posts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/posts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/posts/1/like", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeedOverHTTP(t *testing.T) {
	app := newTestServer(t)

	for _, name := range []string{"A", "B", "C"} {
		_, err := services.NewPost(name, strings.ToLower(name), nil)
		require.NoError(t, err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/feed?page=0&size=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var feed services.FeedPage
	decodeBody(t, resp.Body, &feed)
	assert.EqualValues(t, 3, feed.Total)
	require.Len(t, feed.Posts, 2)
	assert.Equal(t, "C", feed.Posts[0].Name)
	assert.Equal(t, "B", feed.Posts[1].Name)
	assert.False(t, feed.Filtered)

	// Bad page size is a validation failure, not a server error.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/feed?page=0&size=0", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreatePostValidationOverHTTP(t *testing.T) {
	app := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"name":"","text":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTagDirectoryOverHTTP(t *testing.T) {
	app := newTestServer(t)

	_, err := services.NewPost("A", "a", []string{"cats", "dogs"})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/tags", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tags []services.TagCount
	decodeBody(t, resp.Body, &tags)
	require.Len(t, tags, 2)
}
