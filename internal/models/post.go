package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title    string `gorm:"uniqueIndex;not null" json:"title"`
	Subtitle string `json:"subtitle"`
	// Date is the human-readable publish date shown on the page,
	// stamped once at creation ("January 2, 2006").
	Date      string    `gorm:"not null" json:"date"`
	Body      string    `gorm:"type:text" json:"body"`
	ImgURL    string    `json:"img_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by queries, not stored
	CommentCount int `gorm:"-" json:"comment_count"`
}
