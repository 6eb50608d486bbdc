package layout

import (
	"context"
	"sync"

	"go-merchant/internal/kvstore"

	"go.uber.org/zap"
)

// EventPublisher receives a notification after every successful layout
// mutation so connected clients can refresh.
type EventPublisher interface {
	Publish(event string, payload any)
}

// EventLayoutUpdated is published after any layout or widget mutation.
const EventLayoutUpdated = "layout.updated"

// State is the full per-user layout state exposed to the client.
type State struct {
	Layouts        []DashboardLayout `json:"layouts"`
	ActiveLayoutID string            `json:"activeLayoutId"`
	Loading        bool              `json:"loading"`
	IsEditing      bool              `json:"isEditing"`
}

type LayoutService interface {
	State(ctx context.Context, userID string) (*State, error)
	CreateLayout(ctx context.Context, userID, name, basedOn string) (DashboardLayout, error)
	UpdateLayout(ctx context.Context, userID, id string, patch LayoutPatch) error
	DeleteLayout(ctx context.Context, userID, id string) error
	SetActiveLayout(ctx context.Context, userID, id string) error
	SetEditing(ctx context.Context, userID string, editing bool) error

	AddWidget(ctx context.Context, userID string, widget WidgetConfig) (string, error)
	UpdateWidget(ctx context.Context, userID, widgetID string, patch WidgetPatch) error
	RemoveWidget(ctx context.Context, userID, widgetID string) error
	MoveWidget(ctx context.Context, userID, widgetID string, position WidgetPosition) error
	ResizeWidget(ctx context.Context, userID, widgetID string, size WidgetSize) error
	ToggleWidgetVisibility(ctx context.Context, userID, widgetID string) error
	ResetToDefault(ctx context.Context, userID string) error
	VisibleWidgets(ctx context.Context, userID string) ([]WidgetConfig, error)

	ExportLayout(ctx context.Context, userID, id string) (*LayoutExport, error)
	ImportLayout(ctx context.Context, userID string, raw []byte, name string) (DashboardLayout, error)
}

// LayoutServiceImpl scopes one Repository per user over a shared kv store.
// Repositories are created and loaded lazily on first access.
type LayoutServiceImpl struct {
	store  kvstore.Store
	log    *zap.Logger
	events EventPublisher

	mu      sync.Mutex
	repos   map[string]*Repository
	editing map[string]bool
}

func NewLayoutService(store kvstore.Store, log *zap.Logger, events EventPublisher) LayoutService {
	return &LayoutServiceImpl{
		store:   store,
		log:     log,
		events:  events,
		repos:   make(map[string]*Repository),
		editing: make(map[string]bool),
	}
}

// repoFor returns the user's repository, loading it from storage on first
// access. Load completes before the repository is published, so no caller
// can mutate an unloaded repository.
func (s *LayoutServiceImpl) repoFor(ctx context.Context, userID string) *Repository {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, ok := s.repos[userID]
	if !ok {
		repo = NewRepository(kvstore.Namespaced(s.store, "user:"+userID), s.log)
		repo.Load(ctx)
		s.repos[userID] = repo
	}
	return repo
}

func (s *LayoutServiceImpl) publish(userID string) {
	if s.events == nil {
		return
	}
	s.events.Publish(EventLayoutUpdated, map[string]string{"userId": userID})
}

func (s *LayoutServiceImpl) State(ctx context.Context, userID string) (*State, error) {
	repo := s.repoFor(ctx, userID)

	s.mu.Lock()
	editing := s.editing[userID]
	s.mu.Unlock()

	return &State{
		Layouts:        repo.Layouts(),
		ActiveLayoutID: repo.ActiveID(),
		Loading:        repo.Loading(),
		IsEditing:      editing,
	}, nil
}

func (s *LayoutServiceImpl) CreateLayout(ctx context.Context, userID, name, basedOn string) (DashboardLayout, error) {
	created := s.repoFor(ctx, userID).Create(ctx, name, basedOn)
	s.publish(userID)
	return created, nil
}

func (s *LayoutServiceImpl) UpdateLayout(ctx context.Context, userID, id string, patch LayoutPatch) error {
	s.repoFor(ctx, userID).Update(ctx, id, patch)
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) DeleteLayout(ctx context.Context, userID, id string) error {
	if err := s.repoFor(ctx, userID).Delete(ctx, id); err != nil {
		return err
	}
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) SetActiveLayout(ctx context.Context, userID, id string) error {
	s.repoFor(ctx, userID).SetActive(ctx, id)
	s.publish(userID)
	return nil
}

// SetEditing toggles the UI editing affordance. It has no effect on
// persistence.
func (s *LayoutServiceImpl) SetEditing(_ context.Context, userID string, editing bool) error {
	s.mu.Lock()
	s.editing[userID] = editing
	s.mu.Unlock()
	return nil
}

func (s *LayoutServiceImpl) AddWidget(ctx context.Context, userID string, widget WidgetConfig) (string, error) {
	id := s.repoFor(ctx, userID).AddWidget(ctx, widget)
	s.publish(userID)
	return id, nil
}

func (s *LayoutServiceImpl) UpdateWidget(ctx context.Context, userID, widgetID string, patch WidgetPatch) error {
	s.repoFor(ctx, userID).UpdateWidget(ctx, widgetID, patch)
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) RemoveWidget(ctx context.Context, userID, widgetID string) error {
	s.repoFor(ctx, userID).RemoveWidget(ctx, widgetID)
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) MoveWidget(ctx context.Context, userID, widgetID string, position WidgetPosition) error {
	s.repoFor(ctx, userID).MoveWidget(ctx, widgetID, position)
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) ResizeWidget(ctx context.Context, userID, widgetID string, size WidgetSize) error {
	s.repoFor(ctx, userID).ResizeWidget(ctx, widgetID, size)
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) ToggleWidgetVisibility(ctx context.Context, userID, widgetID string) error {
	s.repoFor(ctx, userID).ToggleVisibility(ctx, widgetID)
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) ResetToDefault(ctx context.Context, userID string) error {
	s.repoFor(ctx, userID).ResetToDefault(ctx)
	s.publish(userID)
	return nil
}

func (s *LayoutServiceImpl) VisibleWidgets(ctx context.Context, userID string) ([]WidgetConfig, error) {
	return s.repoFor(ctx, userID).VisibleWidgets(), nil
}

func (s *LayoutServiceImpl) ExportLayout(ctx context.Context, userID, id string) (*LayoutExport, error) {
	return s.repoFor(ctx, userID).Export(id), nil
}

func (s *LayoutServiceImpl) ImportLayout(ctx context.Context, userID string, raw []byte, name string) (DashboardLayout, error) {
	imported, err := s.repoFor(ctx, userID).Import(ctx, raw, name)
	if err != nil {
		return DashboardLayout{}, err
	}
	s.publish(userID)
	return imported, nil
}
