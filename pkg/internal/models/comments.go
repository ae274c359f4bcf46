package models

type Comment struct {
	BaseModel

	PostID uint   `json:"post_id" gorm:"index;not null"`
	Text   string `json:"text" gorm:"not null"`
}
