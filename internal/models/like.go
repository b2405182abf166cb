package models

import "time"

// Like represents a like on a post. At most one row exists per (user, post);
// rows are hard-deleted on unlike so the pair can be liked again.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_like_user_post"`
	PostID    string    `json:"post_id" gorm:"size:24;not null;index;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"created_at"`
}
