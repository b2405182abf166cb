package mocks

import (
	"context"
	"iter"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type FollowService struct {
	mock.Mock
}

func (m *FollowService) Follow(ctx context.Context, actorID, targetID uint) error {
	args := m.Called(ctx, actorID, targetID)
	return args.Error(0)
}

func (m *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	args := m.Called(ctx, actorID, targetID)
	return args.Error(0)
}

func (m *FollowService) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	args := m.Called(ctx, actorID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *FollowService) ListFollowing(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.User], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(models.PaginatedResponse[models.User]), args.Error(1)
}

func (m *FollowService) ListFollowers(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.User], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(models.PaginatedResponse[models.User]), args.Error(1)
}

type ContentService struct {
	mock.Mock
}

func (m *ContentService) CreatePost(ctx context.Context, authorID uint, content string) (*models.Post, error) {
	args := m.Called(ctx, authorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *ContentService) GetPost(ctx context.Context, postID string) (*models.EnrichedPost, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichedPost), args.Error(1)
}

func (m *ContentService) ListPosts(ctx context.Context, query models.PostQuery, params models.PaginationParams) (models.PaginatedResponse[models.EnrichedPost], error) {
	args := m.Called(ctx, query, params)
	return args.Get(0).(models.PaginatedResponse[models.EnrichedPost]), args.Error(1)
}

func (m *ContentService) UpdatePost(ctx context.Context, actorID uint, postID, content string) (*models.Post, error) {
	args := m.Called(ctx, actorID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *ContentService) DeletePost(ctx context.Context, actorID uint, postID string) error {
	args := m.Called(ctx, actorID, postID)
	return args.Error(0)
}

func (m *ContentService) CreateComment(ctx context.Context, authorID uint, postID, content string) (*models.Comment, error) {
	args := m.Called(ctx, authorID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *ContentService) ListComments(ctx context.Context, postID string, params models.PaginationParams) (models.PaginatedResponse[models.Comment], error) {
	args := m.Called(ctx, postID, params)
	return args.Get(0).(models.PaginatedResponse[models.Comment]), args.Error(1)
}

func (m *ContentService) UpdateComment(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error) {
	args := m.Called(ctx, actorID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *ContentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	args := m.Called(ctx, actorID, commentID)
	return args.Error(0)
}

func (m *ContentService) Like(ctx context.Context, userID uint, postID string) (*models.Like, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *ContentService) Unlike(ctx context.Context, userID uint, postID string) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *ContentService) LikeCount(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ContentService) HasLiked(ctx context.Context, userID uint, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

type FeedService struct {
	mock.Mock
}

func (m *FeedService) GetFeed(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.EnrichedPost], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(models.PaginatedResponse[models.EnrichedPost]), args.Error(1)
}

func (m *FeedService) Stream(ctx context.Context, userID uint) iter.Seq2[models.Post, error] {
	args := m.Called(ctx, userID)
	return args.Get(0).(iter.Seq2[models.Post, error])
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Notify(ctx context.Context, recipientID, actorID uint, verb models.Verb, target models.Target) (*models.Notification, error) {
	args := m.Called(ctx, recipientID, actorID, verb, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, recipientID uint, query models.NotificationQuery, params models.PaginationParams) (models.PaginatedResponse[models.NotificationView], error) {
	args := m.Called(ctx, recipientID, query, params)
	return args.Get(0).(models.PaginatedResponse[models.NotificationView]), args.Error(1)
}

func (m *NotificationService) Get(ctx context.Context, recipientID, notificationID uint) (*models.NotificationView, error) {
	args := m.Called(ctx, recipientID, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationView), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, notificationID, recipientID uint) error {
	args := m.Called(ctx, notificationID, recipientID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *AuthService) ParseToken(token string) (*models.JwtCustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JwtCustomClaims), args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *UserService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserService) Search(ctx context.Context, query string, params models.PaginationParams) (models.PaginatedResponse[models.User], error) {
	args := m.Called(ctx, query, params)
	return args.Get(0).(models.PaginatedResponse[models.User]), args.Error(1)
}
