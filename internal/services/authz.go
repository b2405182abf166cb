package services

import "github.com/anonto42/socialfeed/backend/internal/models"

// CanModifyPost reports whether actorID may edit or delete the post
func CanModifyPost(actorID uint, post *models.Post) bool {
	return post != nil && post.UserID == actorID
}

// CanModifyComment reports whether actorID may edit or delete the comment
func CanModifyComment(actorID uint, comment *models.Comment) bool {
	return comment != nil && comment.UserID == actorID
}

// CanReadNotification reports whether actorID is the notification's recipient
func CanReadNotification(actorID uint, n *models.Notification) bool {
	return n != nil && n.RecipientID == actorID
}
