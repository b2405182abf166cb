package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anonto42/socialfeed/backend/internal/events"
	"github.com/anonto42/socialfeed/backend/internal/metrics"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"go.uber.org/zap"
)

// FollowService manages the directed follow graph
type FollowService interface {
	Follow(ctx context.Context, actorID, targetID uint) error
	Unfollow(ctx context.Context, actorID, targetID uint) error
	IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error)
	ListFollowing(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.User], error)
	ListFollowers(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.User], error)
}

type followService struct {
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
	publisher  events.Publisher
	metrics    metrics.Recorder
	log        *zap.Logger
}

func NewFollowService(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	publisher events.Publisher,
	recorder metrics.Recorder,
	log *zap.Logger,
) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		metrics:    recorder,
		log:        log,
	}
}

// Follow adds actorID -> targetID. Following someone already followed is a no-op.
func (s *followService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfFollow
	}
	if err := s.ensureUser(ctx, targetID); err != nil {
		return err
	}

	created, err := s.followRepo.CreateFollow(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	if created {
		s.metrics.RecordAction("follow")
		publish(ctx, s.publisher, s.log, events.New(events.UserFollowed, actorID, formatID(targetID), targetID))
	}
	return nil
}

// Unfollow removes actorID -> targetID
func (s *followService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if err := s.ensureUser(ctx, targetID); err != nil {
		return err
	}

	err := s.followRepo.DeleteFollow(ctx, actorID, targetID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFollowing
	}
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}

	s.metrics.RecordAction("unfollow")
	publish(ctx, s.publisher, s.log, events.New(events.UserUnfollowed, actorID, formatID(targetID), targetID))
	return nil
}

func (s *followService) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, actorID, targetID)
}

func (s *followService) ListFollowing(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.User], error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return models.PaginatedResponse[models.User]{}, err
	}
	users, total, err := s.followRepo.GetFollowing(ctx, userID, params)
	if err != nil {
		return models.PaginatedResponse[models.User]{}, fmt.Errorf("list following: %w", err)
	}
	return models.NewPaginatedResponse(users, params, total), nil
}

func (s *followService) ListFollowers(ctx context.Context, userID uint, params models.PaginationParams) (models.PaginatedResponse[models.User], error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return models.PaginatedResponse[models.User]{}, err
	}
	users, total, err := s.followRepo.GetFollowers(ctx, userID, params)
	if err != nil {
		return models.PaginatedResponse[models.User]{}, fmt.Errorf("list followers: %w", err)
	}
	return models.NewPaginatedResponse(users, params, total), nil
}

func (s *followService) ensureUser(ctx context.Context, id uint) error {
	ok, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// publish delivers ev, logging instead of failing the caller. The write that
// produced the event has already committed.
func publish(ctx context.Context, p events.Publisher, log *zap.Logger, ev events.Event) {
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn("publish event failed",
			zap.String("event_type", string(ev.Type)),
			zap.String("event_id", ev.ID),
			zap.Error(err))
	}
}
