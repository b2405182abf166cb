package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
)

// UserService serves profiles and user search
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error)
	Search(ctx context.Context, query string, params models.PaginationParams) (models.PaginatedResponse[models.User], error)
}

type userService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	sanitizer  *Sanitizer
}

func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, sanitizer *Sanitizer) UserService {
	return &userService{userRepo: userRepo, followRepo: followRepo, sanitizer: sanitizer}
}

// GetProfile returns the user with follower and following counts
func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.GetFollowersCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.followRepo.GetFollowingCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}

	return &models.UserProfile{User: *user, FollowersCount: followers, FollowingCount: following}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Bio != nil {
		user.Bio = s.sanitizer.Text(*req.Bio)
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Search(ctx context.Context, query string, params models.PaginationParams) (models.PaginatedResponse[models.User], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.PaginatedResponse[models.User]{}, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	users, total, err := s.userRepo.SearchUsers(ctx, query, params)
	if err != nil {
		return models.PaginatedResponse[models.User]{}, fmt.Errorf("search users: %w", err)
	}
	return models.NewPaginatedResponse(users, params, total), nil
}

func (s *userService) loadUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return user, nil
}
