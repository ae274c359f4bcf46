package models

// Post is a published entry on the blog. Likes only ever go up, and only via
// an atomic storage-level increment (services.IncrementLikes).
type Post struct {
	BaseModel

	Name  string `json:"name" gorm:"not null"`
	Text  string `json:"text" gorm:"not null"`
	Likes int64  `json:"likes" gorm:"not null;default:0"`

	Tags     []Tag     `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"comments" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
