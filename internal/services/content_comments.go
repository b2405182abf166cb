package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/events"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"go.uber.org/zap"
)

// CreateComment attaches a comment to an existing post. Comments do not
// generate notifications.
func (s *contentService) CreateComment(ctx context.Context, authorID uint, postID, content string) (*models.Comment, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	clean, err := s.sanitizer.Content(content, MaxCommentLength)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: authorID, Content: clean}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := s.dropIfPostGone(ctx, comment); err != nil {
		return nil, err
	}

	s.adjustCounter(ctx, postID, "comments", 1)
	s.metrics.RecordAction("comment")
	publish(ctx, s.publisher, s.log, events.New(events.CommentCreated, authorID, postID, post.UserID))
	return comment, nil
}

// dropIfPostGone removes a comment whose post was deleted while it was being
// written. DeletePost removes the document before purging relations, so a
// post still found here will have its purge run after this insert.
func (s *contentService) dropIfPostGone(ctx context.Context, comment *models.Comment) error {
	_, err := s.loadPost(ctx, comment.PostID)
	if !errors.Is(err, ErrNotFound) {
		return nil
	}
	if derr := s.comments.DeleteComment(ctx, comment.ID); derr != nil && !errors.Is(derr, repositories.ErrNotFound) {
		s.log.Warn("drop comment on deleted post failed",
			zap.Uint("comment_id", comment.ID),
			zap.String("post_id", comment.PostID),
			zap.Error(derr))
	}
	return err
}

// ListComments lists a post's comments newest first
func (s *contentService) ListComments(ctx context.Context, postID string, params models.PaginationParams) (models.PaginatedResponse[models.Comment], error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return models.PaginatedResponse[models.Comment]{}, err
	}
	comments, total, err := s.comments.GetCommentsByPostID(ctx, postID, params)
	if err != nil {
		return models.PaginatedResponse[models.Comment]{}, fmt.Errorf("list comments: %w", err)
	}
	return models.NewPaginatedResponse(comments, params, total), nil
}

func (s *contentService) UpdateComment(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !CanModifyComment(actorID, comment) {
		return nil, ErrPermission
	}

	clean, err := s.sanitizer.Content(content, MaxCommentLength)
	if err != nil {
		return nil, err
	}
	comment.Content = clean
	comment.UpdatedAt = time.Now()

	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *contentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !CanModifyComment(actorID, comment) {
		return ErrPermission
	}

	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return fmt.Errorf("delete comment: %w", err)
	}

	s.adjustCounter(ctx, comment.PostID, "comments", -1)
	publish(ctx, s.publisher, s.log, events.New(events.CommentDeleted, actorID, comment.PostID, comment.UserID))
	return nil
}

func (s *contentService) loadComment(ctx context.Context, commentID uint) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment %d: %w", commentID, err)
	}
	return comment, nil
}
