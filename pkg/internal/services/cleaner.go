package services

import (
	"github.com/mossline/chronicle/pkg/internal/database"
	"github.com/mossline/chronicle/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up the database...")
	count, err := CleanupOrphanTags()
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when cleaning up orphan tags...")
		return
	}
	log.Debug().Int64("affected", count).Msg("Clean up entirely done.")
}

// CleanupOrphanTags deletes tags no post references anymore. Deleting a post
// keeps its tags around; this sweep is the other half of that policy.
func CleanupOrphanTags() (int64, error) {
	res := database.C.
		Where("id NOT IN (?)", database.C.Table("post_tags").Select("tag_id")).
		Delete(&models.Tag{})
	if res.Error != nil {
		return 0, &StoreError{Op: "sweep orphan tags", Err: res.Error}
	}

	if res.RowsAffected > 0 {
		FlushTagDirectory()
	}
	return res.RowsAffected, nil
}
