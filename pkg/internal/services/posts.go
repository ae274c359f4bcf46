package services

import (
	"errors"
	"strings"
	"time"

	"github.com/mossline/chronicle/pkg/internal/database"
	"github.com/mossline/chronicle/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func NewPost(name, text string, tagNames []string) (models.Post, error) {
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)
	if len(name) == 0 {
		return models.Post{}, &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if len(text) == 0 {
		return models.Post{}, &ValidationError{Field: "text", Reason: "cannot be empty"}
	}

	tagNames = lo.Filter(lo.Uniq(lo.Map(tagNames, func(raw string, _ int) string {
		return strings.TrimSpace(raw)
	})), func(entry string, _ int) bool {
		return len(entry) > 0
	})

	start := time.Now()

	var item models.Post
	err := database.C.Transaction(func(tx *gorm.DB) error {
		tags := make([]models.Tag, 0, len(tagNames))
		for _, tagName := range tagNames {
			tag, err := GetTagOrCreate(tx, tagName)
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}

		item = models.Post{
			Name: name,
			Text: text,
			Tags: tags,
		}
		if err := tx.Create(&item).Error; err != nil {
			return &StoreError{Op: "create post", Err: err}
		}
		return nil
	})
	if err != nil {
		return item, err
	}

	// Tag post counts changed; invalidate only once the tx has committed.
	if len(tagNames) > 0 {
		FlushTagDirectory()
	}

	log.Debug().Uint("id", item.ID).Dur("elapsed", time.Since(start)).Msg("The post is posted.")
	return item, nil
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, &NotFoundError{Resource: "post", ID: id}
		}
		return item, &StoreError{Op: "load post", Err: err}
	}

	return item, nil
}

// GetPostDetail loads a post together with its tags and comments. No caching
// sits in front of it; every call reflects the current store state.
func GetPostDetail(id uint) (models.Post, error) {
	var item models.Post
	if err := database.C.
		Preload("Tags").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, &NotFoundError{Resource: "post", ID: id}
		}
		return item, &StoreError{Op: "load post detail", Err: err}
	}

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, &StoreError{Op: "count posts", Err: err}
	}

	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int, order any) ([]models.Post, error) {
	var items []models.Post
	if err := tx.
		Preload("Tags").
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, &StoreError{Op: "list posts", Err: err}
	}

	return items, nil
}

// DeletePost removes the post row together with its comment rows and tag
// links in one transaction. Tags themselves stay behind; the scheduled sweep
// collects the ones nothing references anymore.
func DeletePost(id uint) error {
	err := database.C.Transaction(func(tx *gorm.DB) error {
		item, err := GetPost(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return &StoreError{Op: "delete post comments", Err: err}
		}
		if err := tx.Model(&item).Association("Tags").Clear(); err != nil {
			return &StoreError{Op: "unlink post tags", Err: err}
		}

		res := tx.Delete(&models.Post{}, item.ID)
		if res.Error != nil {
			return &StoreError{Op: "delete post", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			// A concurrent delete won the race after our read.
			return &NotFoundError{Resource: "post", ID: id}
		}
		return nil
	})
	if err != nil {
		return err
	}

	FlushTagDirectory()
	return nil
}

const TruncatePostContentThreshold = 160

func TruncatePostContent(post models.Post) models.Post {
	val := []rune(post.Text)
	if len(val) >= TruncatePostContentThreshold {
		post.Text = string(val[:TruncatePostContentThreshold]) + "..."
	}

	return post
}
