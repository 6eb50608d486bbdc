package layout

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Widget collection operations act on the currently active layout only.
// Every operation is a no-op when there is no active layout or the widget
// id is unknown; those cases are not errors for a preference store.

// mutateActive applies fn to the active layout, refreshes UpdatedAt and
// persists the full list. Reports whether a layout was mutated.
func (r *Repository) mutateActive(ctx context.Context, fn func(l *DashboardLayout)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.findLayout(r.activeID)
	if active == nil {
		return false
	}

	fn(active)
	active.UpdatedAt = time.Now()
	r.persistLayouts(ctx)
	return true
}

// AddWidget assigns a fresh unique id and appends the widget to the end of
// the active layout's sequence (insertion order is display order). The
// assigned id is returned, or "" when there is no active layout.
func (r *Repository) AddWidget(ctx context.Context, widget WidgetConfig) string {
	widget.ID = "widget-" + uuid.NewString()
	ok := r.mutateActive(ctx, func(l *DashboardLayout) {
		l.Widgets = append(l.Widgets, widget)
	})
	if !ok {
		return ""
	}
	return widget.ID
}

// UpdateWidget merges patch into the widget matching widgetID.
func (r *Repository) UpdateWidget(ctx context.Context, widgetID string, patch WidgetPatch) {
	r.mutateActive(ctx, func(l *DashboardLayout) {
		for i := range l.Widgets {
			if l.Widgets[i].ID != widgetID {
				continue
			}
			w := &l.Widgets[i]
			if patch.Type != nil {
				w.Type = *patch.Type
			}
			if patch.Title != nil {
				w.Title = *patch.Title
			}
			if patch.Size != nil {
				w.Size = *patch.Size
			}
			if patch.Position != nil {
				w.Position = *patch.Position
			}
			if patch.IsVisible != nil {
				w.IsVisible = *patch.IsVisible
			}
			if patch.RefreshInterval != nil {
				w.RefreshInterval = *patch.RefreshInterval
			}
			return
		}
	})
}

// RemoveWidget filters out the widget matching widgetID.
func (r *Repository) RemoveWidget(ctx context.Context, widgetID string) {
	r.mutateActive(ctx, func(l *DashboardLayout) {
		filtered := l.Widgets[:0]
		for _, w := range l.Widgets {
			if w.ID != widgetID {
				filtered = append(filtered, w)
			}
		}
		l.Widgets = filtered
	})
}

// MoveWidget changes only the widget's grid position.
func (r *Repository) MoveWidget(ctx context.Context, widgetID string, position WidgetPosition) {
	r.UpdateWidget(ctx, widgetID, WidgetPatch{Position: &position})
}

// ResizeWidget changes only the widget's size hint.
func (r *Repository) ResizeWidget(ctx context.Context, widgetID string, size WidgetSize) {
	r.UpdateWidget(ctx, widgetID, WidgetPatch{Size: &size})
}

// ToggleVisibility flips IsVisible on the widget matching widgetID.
func (r *Repository) ToggleVisibility(ctx context.Context, widgetID string) {
	r.mutateActive(ctx, func(l *DashboardLayout) {
		for i := range l.Widgets {
			if l.Widgets[i].ID == widgetID {
				l.Widgets[i].IsVisible = !l.Widgets[i].IsVisible
				return
			}
		}
	})
}

// ResetToDefault replaces the active layout's widget collection with the
// built-in seed set. Id and name are preserved.
func (r *Repository) ResetToDefault(ctx context.Context) {
	r.mutateActive(ctx, func(l *DashboardLayout) {
		l.Widgets = SeedWidgets()
	})
}

// VisibleWidgets returns the active layout's widgets filtered to
// IsVisible, preserving order. Recomputed on every call, never cached.
func (r *Repository) VisibleWidgets() []WidgetConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.findLayout(r.activeID)
	if active == nil {
		return nil
	}

	visible := make([]WidgetConfig, 0, len(active.Widgets))
	for _, w := range active.Widgets {
		if w.IsVisible {
			visible = append(visible, w)
		}
	}
	return visible
}
