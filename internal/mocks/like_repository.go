package mocks

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type LikeRepository struct {
	mock.Mock
}

func (m *LikeRepository) CreateLike(ctx context.Context, like *models.Like, notification *models.Notification) error {
	args := m.Called(ctx, like, notification)
	return args.Error(0)
}

func (m *LikeRepository) DeleteLike(ctx context.Context, postID string, userID uint) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *LikeRepository) GetLikesCountByPostID(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LikeRepository) HasUserLikedPost(ctx context.Context, postID string, userID uint) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

type PostCascadeRepository struct {
	mock.Mock
}

func (m *PostCascadeRepository) PurgePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}
