package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follower_following;check:chk_follow_not_self,follower_id <> following_id"`
	FollowingID uint      `json:"following_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
