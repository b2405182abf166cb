package repositories

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error)
	GetFollowing(ctx context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge unless it already exists.
// The returned bool reports whether a new row was written.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Create(follow)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteFollow removes the edge, returning ErrNotFound when there was none
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers lists users following userID, oldest edge first
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error) {
	return r.listEdges(ctx, "follows.follower_id", "follows.following_id", userID, params)
}

// GetFollowing lists users followed by userID, oldest edge first
func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint, params models.PaginationParams) ([]models.User, int64, error) {
	return r.listEdges(ctx, "follows.following_id", "follows.follower_id", userID, params)
}

func (r *PostgresFollowRepository) listEdges(ctx context.Context, joinCol, whereCol string, userID uint, params models.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where(whereCol+" = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON "+joinCol+" = users.id").
		Where(whereCol+" = ?", userID).
		Order("follows.id ASC").
		Offset(params.Offset()).Limit(params.Limit()).
		Find(&users).Error
	return users, total, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("id ASC").
		Pluck("following_id", &ids).Error
	return ids, err
}
