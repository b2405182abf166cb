package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/socialfeed/backend/internal/metrics"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"go.uber.org/zap"
)

// NotificationService generates notifications and serves the inbox
type NotificationService interface {
	Notify(ctx context.Context, recipientID, actorID uint, verb models.Verb, target models.Target) (*models.Notification, error)
	List(ctx context.Context, recipientID uint, query models.NotificationQuery, params models.PaginationParams) (models.PaginatedResponse[models.NotificationView], error)
	Get(ctx context.Context, recipientID, notificationID uint) (*models.NotificationView, error)
	MarkRead(ctx context.Context, notificationID, recipientID uint) error
	MarkAllRead(ctx context.Context, recipientID uint) (int64, error)
	UnreadCount(ctx context.Context, recipientID uint) (int64, error)
}

type notificationService struct {
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
	unread    repositories.UnreadCache
	metrics   metrics.Recorder
	log       *zap.Logger
}

func NewNotificationService(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	unread repositories.UnreadCache,
	recorder metrics.Recorder,
	log *zap.Logger,
) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		unread:    unread,
		metrics:   recorder,
		log:       log,
	}
}

// newNotification builds an unread notification, rejecting self-notification
// and malformed verbs or targets.
func newNotification(recipientID, actorID uint, verb models.Verb, target models.Target) (*models.Notification, error) {
	if recipientID == actorID {
		return nil, ErrSelfNotify
	}
	if !verb.Valid() {
		return nil, fmt.Errorf("%w: unknown verb %q", ErrValidation, verb)
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: invalid target", ErrValidation)
	}
	return &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		Target:      target,
		IsRead:      false,
	}, nil
}

func (s *notificationService) Notify(ctx context.Context, recipientID, actorID uint, verb models.Verb, target models.Target) (*models.Notification, error) {
	n, err := newNotification(recipientID, actorID, verb, target)
	if err != nil {
		return nil, err
	}
	if err := s.notifRepo.CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	s.metrics.RecordNotification(string(verb))
	invalidateUnread(ctx, s.unread, s.log, recipientID)
	return n, nil
}

// List returns the recipient's inbox newest first
func (s *notificationService) List(ctx context.Context, recipientID uint, query models.NotificationQuery, params models.PaginationParams) (models.PaginatedResponse[models.NotificationView], error) {
	items, total, err := s.notifRepo.GetByRecipientID(ctx, recipientID, query, params)
	if err != nil {
		return models.PaginatedResponse[models.NotificationView]{}, fmt.Errorf("list notifications: %w", err)
	}

	views, err := s.withActors(ctx, items)
	if err != nil {
		return models.PaginatedResponse[models.NotificationView]{}, err
	}
	return models.NewPaginatedResponse(views, params, total), nil
}

func (s *notificationService) Get(ctx context.Context, recipientID, notificationID uint) (*models.NotificationView, error) {
	n, err := s.load(ctx, recipientID, notificationID)
	if err != nil {
		return nil, err
	}
	views, err := s.withActors(ctx, []models.Notification{*n})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// MarkRead flips one notification to read. Marking an already-read
// notification succeeds without change.
func (s *notificationService) MarkRead(ctx context.Context, notificationID, recipientID uint) error {
	n, err := s.load(ctx, recipientID, notificationID)
	if err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	if err := s.notifRepo.MarkAsRead(ctx, notificationID); err != nil {
		return fmt.Errorf("mark notification %d read: %w", notificationID, err)
	}
	invalidateUnread(ctx, s.unread, s.log, recipientID)
	return nil
}

// MarkAllRead marks every unread notification of the recipient read and
// returns how many changed. Zero is not an error.
func (s *notificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	n, err := s.notifRepo.MarkAllAsRead(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	if n > 0 {
		invalidateUnread(ctx, s.unread, s.log, recipientID)
	}
	return n, nil
}

// UnreadCount reads through the cache; cache failures fall back to the database.
// The fill is tied to the generation seen on the miss, so a count that was
// invalidated while it was being computed is not cached.
func (s *notificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	entry, err := s.unread.Get(ctx, recipientID)
	if err == nil && entry.Hit {
		return entry.Count, nil
	}
	cacheUp := err == nil
	if err != nil {
		s.log.Warn("unread cache get failed", zap.Uint("recipient_id", recipientID), zap.Error(err))
	}

	n, err := s.notifRepo.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	if cacheUp {
		if err := s.unread.Set(ctx, recipientID, n, entry.Generation); err != nil {
			s.log.Warn("unread cache set failed", zap.Uint("recipient_id", recipientID), zap.Error(err))
		}
	}
	return n, nil
}

func (s *notificationService) load(ctx context.Context, recipientID, notificationID uint) (*models.Notification, error) {
	n, err := s.notifRepo.GetByID(ctx, notificationID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
	}
	if err != nil {
		return nil, fmt.Errorf("get notification %d: %w", notificationID, err)
	}
	if !CanReadNotification(recipientID, n) {
		return nil, ErrPermission
	}
	return n, nil
}

func (s *notificationService) withActors(ctx context.Context, items []models.Notification) ([]models.NotificationView, error) {
	ids := make([]uint, len(items))
	for i, n := range items {
		ids[i] = n.ActorID
	}
	actors, err := usersByID(ctx, s.userRepo, ids)
	if err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}

	views := make([]models.NotificationView, len(items))
	for i, n := range items {
		actor, ok := actors[n.ActorID]
		if !ok {
			actor = models.UserCompact{ID: n.ActorID}
		}
		views[i] = models.NotificationView{Notification: n, Actor: actor}
	}
	return views, nil
}

func invalidateUnread(ctx context.Context, cache repositories.UnreadCache, log *zap.Logger, recipientID uint) {
	if err := cache.Invalidate(ctx, recipientID); err != nil {
		log.Warn("unread cache invalidate failed", zap.Uint("recipient_id", recipientID), zap.Error(err))
	}
}
