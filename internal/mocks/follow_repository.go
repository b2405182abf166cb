package mocks

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type FollowRepository struct {
	mock.Mock
}

func (m *FollowRepository) CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *FollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *FollowRepository) GetFollowers(ctx context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *FollowRepository) GetFollowing(ctx context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *FollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}
