package mocks

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *NotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, query models.NotificationQuery, params models.PaginationParams) ([]models.Notification, int64, error) {
	args := m.Called(ctx, recipientID, query, params)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, notificationID uint) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type UnreadCache struct {
	mock.Mock
}

func (m *UnreadCache) Get(ctx context.Context, recipientID uint) (repositories.UnreadEntry, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(repositories.UnreadEntry), args.Error(1)
}

func (m *UnreadCache) Set(ctx context.Context, recipientID uint, count, generation int64) error {
	args := m.Called(ctx, recipientID, count, generation)
	return args.Error(0)
}

func (m *UnreadCache) Invalidate(ctx context.Context, recipientID uint) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}
