package mocks

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *PostRepository) ListPosts(ctx context.Context, query models.PostQuery, skip, limit int64) ([]models.Post, int64, error) {
	args := m.Called(ctx, query, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *PostRepository) UpdatePostContent(ctx context.Context, id, content string) (*models.Post, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *PostRepository) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostRepository) IncrementLikesCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *PostRepository) IncrementCommentsCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}
