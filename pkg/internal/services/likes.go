package services

import (
	"github.com/mossline/chronicle/pkg/internal/database"
	"github.com/mossline/chronicle/pkg/internal/models"
	"gorm.io/gorm"
)

// IncrementLikes bumps a post's like counter by one and returns the new
// count. The bump is a single UPDATE with a relative expression, so
// concurrent callers can never overwrite each other's increment. When the
// post is gone (or deleted mid-race) the counter is untouched and the caller
// gets a NotFoundError.
func IncrementLikes(id uint) (int64, error) {
	var count int64
	err := database.C.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + 1"))
		if res.Error != nil {
			return &StoreError{Op: "increment likes", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Resource: "post", ID: id}
		}

		var item models.Post
		if err := tx.Select("likes").Take(&item, id).Error; err != nil {
			return &StoreError{Op: "read like count", Err: err}
		}
		count = item.Likes
		return nil
	})

	return count, err
}
