package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:24;not null;index"` // MongoDB ObjectID hex
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}
