package services

import (
	"context"
	"errors"
	"strings"
	"time"

	localCache "github.com/mossline/chronicle/pkg/internal/cache"
	"github.com/mossline/chronicle/pkg/internal/database"
	"github.com/mossline/chronicle/pkg/internal/models"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetTagOrCreate resolves a tag name to its row, creating it when missing.
// When two creators race on the same name the pre-existing row wins and both
// callers get it.
func GetTagOrCreate(tx *gorm.DB, name string) (models.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var tag models.Tag
	if err := tx.Where("name = ?", name).First(&tag).Error; err == nil {
		return tag, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return tag, &StoreError{Op: "load tag", Err: err}
	}

	return claimTag(tx, name)
}

// claimTag inserts the tag name, yielding to whichever writer got there
// first. DO NOTHING on conflict keeps a lost race from aborting the
// enclosing transaction on postgres, so the loser can still read the
// winner's row inside the same tx.
func claimTag(tx *gorm.DB, name string) (models.Tag, error) {
	tag := models.Tag{Name: name}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag)
	if res.Error != nil {
		return tag, &StoreError{Op: "create tag", Err: res.Error}
	}

	if res.RowsAffected == 0 {
		if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
			return tag, &StoreError{Op: "load tag", Err: err}
		}
	}

	return tag, nil
}

type TagCount struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	PostCount int64  `json:"post_count"`
}

const tagDirectoryCacheKey = "tag-directory"

// ListTags returns the tag directory with per-tag post counts, served from
// the in-process cache between invalidations.
func ListTags() ([]TagCount, error) {
	var marshal *marshaler.Marshaler
	ctx := context.Background()

	if localCache.S != nil {
		marshal = marshaler.New(cache.New[any](localCache.S))
		if cached, err := marshal.Get(ctx, tagDirectoryCacheKey, new([]TagCount)); err == nil {
			return *cached.(*[]TagCount), nil
		}
	}

	var tags []TagCount
	if err := database.C.Model(&models.Tag{}).
		Select("tags.id, tags.name, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name ASC").
		Scan(&tags).Error; err != nil {
		return tags, &StoreError{Op: "list tags", Err: err}
	}

	if marshal != nil {
		_ = marshal.Set(ctx, tagDirectoryCacheKey, tags, store.WithExpiration(5*time.Minute))
	}

	return tags, nil
}

func FlushTagDirectory() {
	if localCache.S == nil {
		return
	}
	marshal := marshaler.New(cache.New[any](localCache.S))
	_ = marshal.Delete(context.Background(), tagDirectoryCacheKey)
}
