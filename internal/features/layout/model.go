package layout

import (
	"time"
)

// WidgetType is the closed set of dashboard tile kinds.
type WidgetType string

const (
	WidgetTypeMetric       WidgetType = "metric"
	WidgetTypeChart        WidgetType = "chart"
	WidgetTypeList         WidgetType = "list"
	WidgetTypeNotification WidgetType = "notification"
)

// ValidWidgetType reports whether t is one of the supported widget types.
func ValidWidgetType(t WidgetType) bool {
	switch t {
	case WidgetTypeMetric, WidgetTypeChart, WidgetTypeList, WidgetTypeNotification:
		return true
	}
	return false
}

// WidgetSize is a presentational sizing hint.
type WidgetSize string

const (
	WidgetSizeSmall  WidgetSize = "small"
	WidgetSizeMedium WidgetSize = "medium"
	WidgetSizeLarge  WidgetSize = "large"
)

// WidgetPosition is an advisory grid coordinate pair. Collisions are not
// validated; the client grid resolves overlap.
type WidgetPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WidgetConfig is a single dashboard tile.
type WidgetConfig struct {
	ID              string         `json:"id"`
	Type            WidgetType     `json:"type"`
	Title           string         `json:"title"`
	Size            WidgetSize     `json:"size"`
	Position        WidgetPosition `json:"position"`
	IsVisible       bool           `json:"isVisible"`
	RefreshInterval int            `json:"refreshInterval"` // seconds between data refreshes
}

// DashboardLayout is a named, ordered collection of widgets. Insertion order
// of Widgets is display order.
type DashboardLayout struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Widgets   []WidgetConfig `json:"widgets"`
	IsDefault bool           `json:"isDefault"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// LayoutPatch carries the fields Update merges into an existing layout.
// Nil fields are left untouched.
type LayoutPatch struct {
	Name      *string         `json:"name,omitempty"`
	IsDefault *bool           `json:"isDefault,omitempty"`
	Widgets   *[]WidgetConfig `json:"widgets,omitempty"`
}

// WidgetPatch carries the fields UpdateWidget merges into a widget.
type WidgetPatch struct {
	Type            *WidgetType     `json:"type,omitempty"`
	Title           *string         `json:"title,omitempty"`
	Size            *WidgetSize     `json:"size,omitempty"`
	Position        *WidgetPosition `json:"position,omitempty"`
	IsVisible       *bool           `json:"isVisible,omitempty"`
	RefreshInterval *int            `json:"refreshInterval,omitempty"`
}

const (
	// DefaultLayoutID is the id of the seeded layout.
	DefaultLayoutID = "default"
	// DefaultLayoutName is the name of the seeded layout.
	DefaultLayoutName = "Default Dashboard"
)

// SeedWidgets returns the fixed built-in widget set used to populate the
// first-ever layout and any manual reset.
func SeedWidgets() []WidgetConfig {
	return []WidgetConfig{
		{ID: "widget-sales-today", Type: WidgetTypeMetric, Title: "Today's Sales", Size: WidgetSizeMedium, Position: WidgetPosition{X: 0, Y: 0}, IsVisible: true, RefreshInterval: 60},
		{ID: "widget-orders-today", Type: WidgetTypeMetric, Title: "Orders", Size: WidgetSizeSmall, Position: WidgetPosition{X: 1, Y: 0}, IsVisible: true, RefreshInterval: 60},
		{ID: "widget-visitors", Type: WidgetTypeMetric, Title: "Store Visitors", Size: WidgetSizeSmall, Position: WidgetPosition{X: 2, Y: 0}, IsVisible: true, RefreshInterval: 300},
		{ID: "widget-revenue-chart", Type: WidgetTypeChart, Title: "Revenue (7 Days)", Size: WidgetSizeLarge, Position: WidgetPosition{X: 0, Y: 1}, IsVisible: true, RefreshInterval: 300},
		{ID: "widget-notifications", Type: WidgetTypeNotification, Title: "Notifications", Size: WidgetSizeSmall, Position: WidgetPosition{X: 1, Y: 1}, IsVisible: true, RefreshInterval: 30},
		{ID: "widget-top-products", Type: WidgetTypeList, Title: "Top Products", Size: WidgetSizeMedium, Position: WidgetPosition{X: 0, Y: 2}, IsVisible: true, RefreshInterval: 300},
		{ID: "widget-recent-orders", Type: WidgetTypeList, Title: "Recent Orders", Size: WidgetSizeMedium, Position: WidgetPosition{X: 1, Y: 2}, IsVisible: true, RefreshInterval: 120},
	}
}

// seedLayout builds the "Default Dashboard" layout.
func seedLayout(now time.Time) DashboardLayout {
	return DashboardLayout{
		ID:        DefaultLayoutID,
		Name:      DefaultLayoutName,
		Widgets:   SeedWidgets(),
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// copyWidgets deep-copies a widget slice so layouts never alias each other's
// collections.
func copyWidgets(widgets []WidgetConfig) []WidgetConfig {
	out := make([]WidgetConfig, len(widgets))
	copy(out, widgets)
	return out
}
