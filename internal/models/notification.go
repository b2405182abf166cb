package models

import (
	"strconv"
	"time"
)

// Verb is the action a notification reports
type Verb string

const (
	VerbLiked     Verb = "liked"
	VerbFollowed  Verb = "followed"
	VerbCommented Verb = "commented"
)

func (v Verb) Valid() bool {
	switch v {
	case VerbLiked, VerbFollowed, VerbCommented:
		return true
	}
	return false
}

// TargetKind tags which entity a Target points at
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
	TargetUser    TargetKind = "user"
)

// Target is the entity a notification refers to. Build it with PostTarget,
// CommentTarget or UserTarget so Kind and ID always agree.
type Target struct {
	Kind TargetKind `json:"kind" gorm:"column:target_type;size:20;not null"`
	ID   string     `json:"id" gorm:"column:target_id;size:32;not null"`
}

func PostTarget(postID string) Target {
	return Target{Kind: TargetPost, ID: postID}
}

func CommentTarget(commentID uint) Target {
	return Target{Kind: TargetComment, ID: strconv.FormatUint(uint64(commentID), 10)}
}

func UserTarget(userID uint) Target {
	return Target{Kind: TargetUser, ID: strconv.FormatUint(uint64(userID), 10)}
}

func (t Target) Valid() bool {
	switch t.Kind {
	case TargetPost, TargetComment, TargetUser:
		return t.ID != ""
	}
	return false
}

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index:idx_notification_recipient_read"`
	ActorID     uint      `json:"actor_id" gorm:"not null;index"`
	Verb        Verb      `json:"verb" gorm:"size:20;not null"`
	Target      Target    `json:"target" gorm:"embedded"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false;index:idx_notification_recipient_read"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// NotificationQuery filters inbox listings
type NotificationQuery struct {
	UnreadOnly bool
}

// NotificationView is a notification with the actor summary attached
type NotificationView struct {
	Notification
	Actor UserCompact `json:"actor"`
}

// UnreadCountResponse is returned by the unread-count endpoint
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkAllReadResponse reports how many notifications were flipped to read
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
