package models

// Tag is a shared label. Tags survive the deletion of their posts; orphans
// are swept by the scheduled cleanup instead.
type Tag struct {
	BaseModel

	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_tags"`
}
