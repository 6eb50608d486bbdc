package notification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventPublisher mirrors the websocket hub's publish surface.
type EventPublisher interface {
	Publish(event string, payload any)
}

// EventNotificationCreated is published when a notification is stored.
const EventNotificationCreated = "notification.created"

type NotificationService interface {
	Notify(ctx context.Context, n *Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkAsRead(ctx context.Context, id string, userID primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

type NotificationServiceImpl struct {
	repo   NotificationRepository
	events EventPublisher
	log    *zap.Logger
}

func NewNotificationService(repo NotificationRepository, events EventPublisher, log *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		repo:   repo,
		events: events,
		log:    log,
	}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, n *Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.events != nil {
		s.events.Publish(EventNotificationCreated, n)
	}
	return nil
}

func (s *NotificationServiceImpl) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.repo.FindByUserID(ctx, userID, page, limit)
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, id string, userID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// PurgeRead removes read notifications older than the retention window.
// Invoked by the maintenance scheduler.
func (s *NotificationServiceImpl) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	deleted, err := s.repo.DeleteReadBefore(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.log.Info("purged read notifications", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}
