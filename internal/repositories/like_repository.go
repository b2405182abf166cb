package repositories

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like, notification *models.Notification) error
	DeleteLike(ctx context.Context, postID string, userID uint) error
	GetLikesCountByPostID(ctx context.Context, postID string) (int64, error)
	HasUserLikedPost(ctx context.Context, postID string, userID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the like and, when notification is non-nil, the
// notification in the same transaction. A second like on the same post by
// the same user yields ErrDuplicate and writes nothing.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like, notification *models.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return translate(err)
		}
		if notification == nil {
			return nil
		}
		return tx.Create(notification).Error
	})
}

// DeleteLike deletes a like, returning ErrNotFound when there was none
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID string, userID uint) error {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
