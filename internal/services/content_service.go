package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/socialfeed/backend/internal/events"
	"github.com/anonto42/socialfeed/backend/internal/metrics"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"go.uber.org/zap"
)

// ContentService owns posts, comments and likes
type ContentService interface {
	CreatePost(ctx context.Context, authorID uint, content string) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.EnrichedPost, error)
	ListPosts(ctx context.Context, query models.PostQuery, params models.PaginationParams) (models.PaginatedResponse[models.EnrichedPost], error)
	UpdatePost(ctx context.Context, actorID uint, postID, content string) (*models.Post, error)
	DeletePost(ctx context.Context, actorID uint, postID string) error

	CreateComment(ctx context.Context, authorID uint, postID, content string) (*models.Comment, error)
	ListComments(ctx context.Context, postID string, params models.PaginationParams) (models.PaginatedResponse[models.Comment], error)
	UpdateComment(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID uint) error

	Like(ctx context.Context, userID uint, postID string) (*models.Like, error)
	Unlike(ctx context.Context, userID uint, postID string) error
	LikeCount(ctx context.Context, postID string) (int64, error)
	HasLiked(ctx context.Context, userID uint, postID string) (bool, error)
}

// ContentDeps groups the stores ContentService works against
type ContentDeps struct {
	Posts       repositories.PostRepository
	Comments    repositories.CommentRepository
	Likes       repositories.LikeRepository
	Users       repositories.UserRepository
	Cascade     repositories.PostCascadeRepository
	UnreadCache repositories.UnreadCache
	Publisher   events.Publisher
	Metrics     metrics.Recorder
	Sanitizer   *Sanitizer
	Logger      *zap.Logger
}

type contentService struct {
	posts     repositories.PostRepository
	comments  repositories.CommentRepository
	likes     repositories.LikeRepository
	users     repositories.UserRepository
	cascade   repositories.PostCascadeRepository
	unread    repositories.UnreadCache
	publisher events.Publisher
	metrics   metrics.Recorder
	sanitizer *Sanitizer
	log       *zap.Logger
}

func NewContentService(deps ContentDeps) ContentService {
	return &contentService{
		posts:     deps.Posts,
		comments:  deps.Comments,
		likes:     deps.Likes,
		users:     deps.Users,
		cascade:   deps.Cascade,
		unread:    deps.UnreadCache,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		sanitizer: deps.Sanitizer,
		log:       deps.Logger,
	}
}

func (s *contentService) CreatePost(ctx context.Context, authorID uint, content string) (*models.Post, error) {
	clean, err := s.sanitizer.Content(content, MaxPostLength)
	if err != nil {
		return nil, err
	}

	post := &models.Post{UserID: authorID, Content: clean}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.metrics.RecordAction("post")
	publish(ctx, s.publisher, s.log, events.New(events.PostCreated, authorID, post.ID.Hex(), authorID))
	return post, nil
}

func (s *contentService) GetPost(ctx context.Context, postID string) (*models.EnrichedPost, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	enriched, err := enrichPosts(ctx, s.users, []models.Post{*post})
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	return &enriched[0], nil
}

// ListPosts returns posts newest first, optionally filtered by author or content
func (s *contentService) ListPosts(ctx context.Context, query models.PostQuery, params models.PaginationParams) (models.PaginatedResponse[models.EnrichedPost], error) {
	posts, total, err := s.posts.ListPosts(ctx, query, int64(params.Offset()), int64(params.Limit()))
	if err != nil {
		return models.PaginatedResponse[models.EnrichedPost]{}, fmt.Errorf("list posts: %w", err)
	}
	enriched, err := enrichPosts(ctx, s.users, posts)
	if err != nil {
		return models.PaginatedResponse[models.EnrichedPost]{}, fmt.Errorf("load authors: %w", err)
	}
	return models.NewPaginatedResponse(enriched, params, total), nil
}

// UpdatePost replaces the content of a post owned by actorID
func (s *contentService) UpdatePost(ctx context.Context, actorID uint, postID, content string) (*models.Post, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !CanModifyPost(actorID, post) {
		return nil, ErrPermission
	}

	clean, err := s.sanitizer.Content(content, MaxPostLength)
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.UpdatePostContent(ctx, postID, clean)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: post %s", ErrNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// DeletePost removes a post owned by actorID together with its comments and likes
func (s *contentService) DeletePost(ctx context.Context, actorID uint, postID string) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if !CanModifyPost(actorID, post) {
		return ErrPermission
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		return fmt.Errorf("delete post: %w", err)
	}
	if err := s.cascade.PurgePost(ctx, postID); err != nil {
		s.log.Error("purge post relations failed", zap.String("post_id", postID), zap.Error(err))
		return fmt.Errorf("purge post %s: %w", postID, err)
	}

	s.metrics.RecordAction("delete_post")
	publish(ctx, s.publisher, s.log, events.New(events.PostDeleted, actorID, postID, post.UserID))
	return nil
}

func (s *contentService) loadPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: post %s", ErrNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", postID, err)
	}
	return post, nil
}

// adjustCounter keeps the denormalised counters on the post document in step.
// The relational rows are authoritative, so a failure here is only logged.
func (s *contentService) adjustCounter(ctx context.Context, postID, field string, delta int) {
	var err error
	switch field {
	case "likes":
		err = s.posts.IncrementLikesCount(ctx, postID, delta)
	case "comments":
		err = s.posts.IncrementCommentsCount(ctx, postID, delta)
	}
	if err != nil {
		s.log.Warn("adjust post counter failed",
			zap.String("post_id", postID),
			zap.String("counter", field),
			zap.Int("delta", delta),
			zap.Error(err))
	}
}
