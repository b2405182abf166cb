package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
)

const defaultStreamBatch = 50

// FeedService assembles a user's home feed from the posts of followed users
type FeedService interface {
	GetFeed(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.EnrichedPost], error)
	Stream(ctx context.Context, userID uint) iter.Seq2[models.Post, error]
}

type feedService struct {
	followRepo repositories.FollowRepository
	postRepo   repositories.PostRepository
	userRepo   repositories.UserRepository
	batch      int64
}

func NewFeedService(
	followRepo repositories.FollowRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
) FeedService {
	return &feedService{
		followRepo: followRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
		batch:      defaultStreamBatch,
	}
}

// GetFeed returns one page of posts by users userID follows, newest first.
// The user's own posts are not included.
func (s *feedService) GetFeed(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.EnrichedPost], error) {
	ids, err := s.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return models.PaginatedResponse[models.EnrichedPost]{}, fmt.Errorf("load following: %w", err)
	}
	if len(ids) == 0 {
		return models.NewPaginatedResponse[models.EnrichedPost](nil, params, 0), nil
	}

	posts, total, err := s.postRepo.ListPosts(ctx, models.PostQuery{AuthorIDs: ids}, int64(params.Offset()), int64(params.Limit()))
	if err != nil {
		return models.PaginatedResponse[models.EnrichedPost]{}, fmt.Errorf("list feed posts: %w", err)
	}
	enriched, err := enrichPosts(ctx, s.userRepo, posts)
	if err != nil {
		return models.PaginatedResponse[models.EnrichedPost]{}, fmt.Errorf("load authors: %w", err)
	}
	return models.NewPaginatedResponse(enriched, params, total), nil
}

// Stream yields the whole feed lazily in batches, walking a cursor so posts
// inserted mid-iteration neither shift nor repeat entries. Each range over
// the returned sequence starts again from the newest post with a freshly
// loaded following set. Iteration stops at the first error.
func (s *feedService) Stream(ctx context.Context, userID uint) iter.Seq2[models.Post, error] {
	return func(yield func(models.Post, error) bool) {
		ids, err := s.followRepo.GetFollowingIDs(ctx, userID)
		if err != nil {
			yield(models.Post{}, fmt.Errorf("load following: %w", err))
			return
		}
		if len(ids) == 0 {
			return
		}

		query := models.PostQuery{AuthorIDs: ids}
		for {
			if err := ctx.Err(); err != nil {
				yield(models.Post{}, err)
				return
			}

			posts, _, err := s.postRepo.ListPosts(ctx, query, 0, s.batch)
			if err != nil {
				yield(models.Post{}, fmt.Errorf("list feed posts: %w", err))
				return
			}
			for _, p := range posts {
				if !yield(p, nil) {
					return
				}
			}
			if int64(len(posts)) < s.batch {
				return
			}
			query.Before = posts[len(posts)-1].Cursor()
		}
	}
}
