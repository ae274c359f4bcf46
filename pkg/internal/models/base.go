package models

import "time"

// BaseModel is the shared primary key and timestamp set. No soft-delete
// column: a deleted post leaves no row behind, so its comments and tag links
// can never outlive it.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
