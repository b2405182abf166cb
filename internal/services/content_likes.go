package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/socialfeed/backend/internal/events"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
)

// Like records userID liking postID. When the liker is not the author, a
// "liked" notification for the author is written in the same transaction.
// Liking twice returns ErrDuplicateLike.
func (s *contentService) Like(ctx context.Context, userID uint, postID string) (*models.Like, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	notif, err := newNotification(post.UserID, userID, models.VerbLiked, models.PostTarget(postID))
	if errors.Is(err, ErrSelfNotify) {
		notif = nil
	} else if err != nil {
		return nil, err
	}

	like := &models.Like{UserID: userID, PostID: postID}
	if err := s.likes.CreateLike(ctx, like, notif); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateLike
		}
		return nil, fmt.Errorf("create like: %w", err)
	}

	s.adjustCounter(ctx, postID, "likes", 1)
	s.metrics.RecordAction("like")
	if notif != nil {
		s.metrics.RecordNotification(string(notif.Verb))
		invalidateUnread(ctx, s.unread, s.log, notif.RecipientID)
	}
	publish(ctx, s.publisher, s.log, events.New(events.PostLiked, userID, postID, post.UserID))
	return like, nil
}

// Unlike removes the like. It never touches notifications.
func (s *contentService) Unlike(ctx context.Context, userID uint, postID string) error {
	err := s.likes.DeleteLike(ctx, postID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: like on post %s", ErrNotFound, postID)
	}
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}

	s.adjustCounter(ctx, postID, "likes", -1)
	s.metrics.RecordAction("unlike")
	publish(ctx, s.publisher, s.log, events.New(events.PostUnliked, userID, postID, 0))
	return nil
}

func (s *contentService) LikeCount(ctx context.Context, postID string) (int64, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return 0, err
	}
	return s.likes.GetLikesCountByPostID(ctx, postID)
}

func (s *contentService) HasLiked(ctx context.Context, userID uint, postID string) (bool, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return false, err
	}
	return s.likes.HasUserLikedPost(ctx, postID, userID)
}
