package repositories

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostCascadeRepository removes the relational rows hanging off a post document.
// Posts live in MongoDB so the database cannot cascade for us.
type PostCascadeRepository interface {
	PurgePost(ctx context.Context, postID string) error
}

type postgresPostCascadeRepository struct {
	db *gorm.DB
}

func NewPostgresPostCascadeRepository(db *gorm.DB) PostCascadeRepository {
	return &postgresPostCascadeRepository{db: db}
}

// PurgePost deletes every comment and like on the post in one transaction
func (r *postgresPostCascadeRepository) PurgePost(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error
	})
}
