package repositories

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	GetByRecipientID(ctx context.Context, recipientID uint, query models.NotificationQuery, params models.PaginationParams) ([]models.Notification, int64, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *postgresNotificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

// GetByRecipientID lists a recipient's inbox, newest first
func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, query models.NotificationQuery, params models.PaginationParams) ([]models.Notification, int64, error) {
	scope := r.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if query.UnreadOnly {
		scope = scope.Where("is_read = ?", false)
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := scope.Order("created_at DESC").Order("id DESC").
		Offset(params.Offset()).Limit(params.Limit()).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead flips a single notification to read. Already-read rows are left alone.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", notificationID, false).
		Update("is_read", true).Error
}

// MarkAllAsRead flips every unread notification of the recipient in one
// statement and reports how many rows changed.
func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
