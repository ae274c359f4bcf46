package services

import (
	"strings"

	"github.com/mossline/chronicle/pkg/internal/database"
	"github.com/mossline/chronicle/pkg/internal/models"
	"gorm.io/gorm"
)

func AddComment(postID uint, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return models.Comment{}, &ValidationError{Field: "text", Reason: "cannot be empty"}
	}

	var comment models.Comment
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if _, err := GetPost(tx, postID); err != nil {
			return err
		}

		comment = models.Comment{
			PostID: postID,
			Text:   text,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return &StoreError{Op: "create comment", Err: err}
		}
		return nil
	})

	return comment, err
}

func ListComments(postID uint) ([]models.Comment, error) {
	// Existence check and read share one tx so a concurrent delete cannot
	// turn a missing post into an empty listing.
	var comments []models.Comment
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if _, err := GetPost(tx, postID); err != nil {
			return err
		}

		if err := tx.
			Where("post_id = ?", postID).
			Order("created_at ASC, id ASC").
			Find(&comments).Error; err != nil {
			return &StoreError{Op: "list comments", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}
