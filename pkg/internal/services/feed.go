package services

import (
	"math"
	"strings"

	"github.com/mossline/chronicle/pkg/internal/database"
	"github.com/mossline/chronicle/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// FeedPage is one page of the feed plus everything the paging UI needs:
// the fresh total, the page coordinates and whether a tag filter was active.
type FeedPage struct {
	Posts    []models.Post `json:"posts"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Size     int           `json:"size"`
	Filtered bool          `json:"filtered"`
}

func (p FeedPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.Size)))
}

func (p FeedPage) HasNext() bool {
	return p.Page+1 < p.TotalPages()
}

func FilterPostWithTag(tx *gorm.DB, name string) *gorm.DB {
	return tx.Joins("JOIN post_tags ON posts.id = post_tags.post_id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.name = ?", strings.ToLower(strings.TrimSpace(name)))
}

// GetFeed pages through posts newest-first, ties broken by id descending.
// Both the count and the page contents are computed against the live tables
// on every call, so a committed create, delete or like shows up in the very
// next read. A size covering the whole corpus is an ordinary page, not a
// special path.
func GetFeed(page, size int, tag string) (FeedPage, error) {
	if size <= 0 {
		return FeedPage{}, &ValidationError{Field: "size", Reason: "must be a positive integer"}
	}
	if page < 0 {
		return FeedPage{}, &ValidationError{Field: "page", Reason: "cannot be negative"}
	}

	tx := database.C
	filtered := len(strings.TrimSpace(tag)) > 0
	if filtered {
		tx = FilterPostWithTag(tx, tag)
	}

	// The same conditions back both queries; sessions keep the count from
	// polluting the page statement.
	count, err := CountPost(tx.Session(&gorm.Session{}))
	if err != nil {
		return FeedPage{}, err
	}

	items, err := ListPost(tx.Session(&gorm.Session{}), size, page*size, "posts.created_at DESC, posts.id DESC")
	if err != nil {
		return FeedPage{}, err
	}

	items = lo.Map(items, func(item models.Post, _ int) models.Post {
		return TruncatePostContent(item)
	})

	return FeedPage{
		Posts:    items,
		Total:    count,
		Page:     page,
		Size:     size,
		Filtered: filtered,
	}, nil
}
