package layout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ExportVersion is the fixed format version stamped on every export.
const ExportVersion = "1.0"

// ErrInvalidLayout is returned when an import descriptor cannot be
// interpreted.
var ErrInvalidLayout = errors.New("invalid layout configuration")

// LayoutExport is the portable descriptor produced by Export and consumed
// by Import.
type LayoutExport struct {
	Name       string         `json:"name"`
	Widgets    []WidgetConfig `json:"widgets"`
	ExportedAt time.Time      `json:"exportedAt"`
	Version    string         `json:"version"`
}

// Export serializes the layout matching id, or the active layout when id is
// empty. Returns nil when no matching layout exists.
func (r *Repository) Export(id string) *LayoutExport {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		id = r.activeID
	}
	source := r.findLayout(id)
	if source == nil {
		return nil
	}

	return &LayoutExport{
		Name:       source.Name,
		Widgets:    copyWidgets(source.Widgets),
		ExportedAt: time.Now(),
		Version:    ExportVersion,
	}
}

// Import reconstructs a layout from a raw descriptor and appends it to the
// collection. The new layout gets a fresh id; its name falls back from the
// name argument to "Imported <descriptor name>" to a generic label. A
// descriptor without widgets gets the seed set.
func (r *Repository) Import(ctx context.Context, raw []byte, name string) (DashboardLayout, error) {
	var descriptor LayoutExport
	if err := json.Unmarshal(raw, &descriptor); err != nil {
		return DashboardLayout{}, ErrInvalidLayout
	}

	if name == "" {
		if descriptor.Name != "" {
			name = "Imported " + descriptor.Name
		} else {
			name = "Imported Layout"
		}
	}

	widgets := descriptor.Widgets
	if widgets == nil {
		widgets = SeedWidgets()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	imported := DashboardLayout{
		ID:        uuid.NewString(),
		Name:      name,
		Widgets:   copyWidgets(widgets),
		IsDefault: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.layouts = append(r.layouts, imported)
	r.persistLayouts(ctx)
	return imported, nil
}
