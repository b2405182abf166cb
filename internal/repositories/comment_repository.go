package repositories

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string, params models.PaginationParams) ([]models.Comment, int64, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// GetCommentsByPostID lists comments on a post, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID string, params models.PaginationParams) ([]models.Comment, int64, error) {
	scope := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := scope.Order("created_at DESC").Order("id DESC").
		Offset(params.Offset()).Limit(params.Limit()).
		Find(&comments).Error
	return comments, total, err
}

// UpdateComment persists the comment content; post and author are never rewritten
func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	res := r.db.WithContext(ctx).Model(comment).Select("content", "updated_at").Updates(comment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
