package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRepo struct {
	created   []*Notification
	createErr error
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) FindByUserID(context.Context, primitive.ObjectID, int64, int64) ([]Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) CountUnread(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) MarkAsRead(context.Context, string, primitive.ObjectID) error {
	return nil
}

func (f *fakeRepo) MarkAllAsRead(context.Context, primitive.ObjectID) error {
	return nil
}

func (f *fakeRepo) DeleteReadBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakePublisher struct {
	events   []string
	payloads []any
}

func (f *fakePublisher) Publish(event string, payload any) {
	f.events = append(f.events, event)
	f.payloads = append(f.payloads, payload)
}

func TestNotifyStoresAndPublishes(t *testing.T) {
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	svc := NewNotificationService(repo, publisher, zap.NewNop())

	n := &Notification{
		UserID:  primitive.NewObjectID(),
		Title:   "Order received",
		Message: "Order #42 has been placed",
		Type:    NotificationTypeOrder,
	}
	if err := svc.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.created))
	}
	stored := repo.created[0]
	if stored.ID.IsZero() {
		t.Error("stored notification has no id")
	}
	if stored.Title != "Order received" || stored.Type != NotificationTypeOrder {
		t.Errorf("stored notification = %+v", stored)
	}

	if len(publisher.events) != 1 || publisher.events[0] != EventNotificationCreated {
		t.Fatalf("published events = %v, want [%s]", publisher.events, EventNotificationCreated)
	}
	if published, ok := publisher.payloads[0].(*Notification); !ok || published != n {
		t.Errorf("published payload = %v, want the stored notification", publisher.payloads[0])
	}
}

func TestNotifyDoesNotPublishOnStorageError(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("insert failed")}
	publisher := &fakePublisher{}
	svc := NewNotificationService(repo, publisher, zap.NewNop())

	err := svc.Notify(context.Background(), &Notification{Type: NotificationTypeInfo})
	if err == nil {
		t.Fatal("expected storage error")
	}
	if len(publisher.events) != 0 {
		t.Errorf("event published despite failed create: %v", publisher.events)
	}
}
