package repositories

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SearchUsers(ctx context.Context, query string, params models.PaginationParams) ([]models.User, int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user; a taken username or email yields ErrDuplicate
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.findOne(ctx, "firebase_uid = ?", firebaseUID)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUsersByIDs loads the given users in one query; missing ids are skipped
func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

// SearchUsers searches for users by username or email (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string, params models.PaginationParams) ([]models.User, int64, error) {
	pattern := "%" + query + "%"
	scope := r.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := scope.Order("id ASC").Offset(params.Offset()).Limit(params.Limit()).Find(&users).Error
	return users, total, err
}

func (r *PostgresUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
