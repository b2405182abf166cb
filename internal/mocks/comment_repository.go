package mocks

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *CommentRepository) GetCommentsByPostID(ctx context.Context, postID string, params models.PaginationParams) ([]models.Comment, int64, error) {
	args := m.Called(ctx, postID, params)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *CommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) DeleteComment(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
