package layout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go-merchant/internal/kvstore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Persisted keys owned by the repository. It must not assume exclusivity
// over the store as a whole.
const (
	layoutsKey  = "@dashboard_layouts"
	activeIDKey = "@active_layout_id"
)

// ErrDefaultLayout is returned when a caller tries to delete the layout
// flagged as default.
var ErrDefaultLayout = errors.New("cannot delete default layout")

// Repository owns the authoritative in-memory list of dashboard layouts and
// the active-layout pointer, synchronized to a kvstore.Store.
//
// Every mutation writes the complete layout list back to the store. There is
// no transactional guarantee across the two keys; Load re-derives a valid
// active id from the list, so a crash between the two writes self-heals on
// the next start. Write failures are logged and swallowed: the in-memory
// state still reflects the change (availability over durability for a
// preference store).
type Repository struct {
	store kvstore.Store
	log   *zap.Logger

	mu       sync.Mutex
	layouts  []DashboardLayout
	activeID string

	// loading is atomic so it stays observable while Load holds mu.
	loading atomic.Bool
}

func NewRepository(store kvstore.Store, log *zap.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log,
	}
}

// Load reads the persisted layout list and active id. Empty storage is
// seeded with the "Default Dashboard" layout. A dangling active id is
// repaired to the first layout. Load never fails: on any storage or parse
// error it degrades to an in-memory default state.
func (r *Repository) Load(ctx context.Context) {
	r.loading.Store(true)
	defer r.loading.Store(false)

	r.mu.Lock()
	defer r.mu.Unlock()

	layouts, err := r.readLayouts(ctx)
	if err != nil {
		r.log.Warn("failed to load dashboard layouts, using in-memory default", zap.Error(err))
		r.layouts = []DashboardLayout{seedLayout(time.Now())}
		r.activeID = DefaultLayoutID
		return
	}

	if len(layouts) == 0 {
		seeded := seedLayout(time.Now())
		r.layouts = []DashboardLayout{seeded}
		r.activeID = seeded.ID
		r.persistLayouts(ctx)
		r.persistActiveID(ctx)
		return
	}

	r.layouts = layouts

	activeID, err := r.store.GetItem(ctx, activeIDKey)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		r.log.Warn("failed to load active layout id", zap.Error(err))
	}
	if r.findLayout(activeID) == nil {
		activeID = r.layouts[0].ID
	}
	r.activeID = activeID
}

// Create produces a new layout. Its widget set is copied from the layout
// identified by basedOn if found, otherwise from the active layout,
// otherwise from the built-in seed set.
func (r *Repository) Create(ctx context.Context, name string, basedOn string) DashboardLayout {
	r.mu.Lock()
	defer r.mu.Unlock()

	widgets := SeedWidgets()
	if source := r.findLayout(basedOn); source != nil {
		widgets = copyWidgets(source.Widgets)
	} else if active := r.findLayout(r.activeID); active != nil {
		widgets = copyWidgets(active.Widgets)
	}

	now := time.Now()
	created := DashboardLayout{
		ID:        uuid.NewString(),
		Name:      name,
		Widgets:   widgets,
		IsDefault: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.layouts = append(r.layouts, created)
	r.persistLayouts(ctx)
	return created
}

// Update merges patch into the layout matching id and refreshes UpdatedAt.
// Unknown ids are ignored.
func (r *Repository) Update(ctx context.Context, id string, patch LayoutPatch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.findLayout(id)
	if target == nil {
		return
	}

	if patch.Name != nil {
		target.Name = *patch.Name
	}
	if patch.IsDefault != nil {
		target.IsDefault = *patch.IsDefault
	}
	if patch.Widgets != nil {
		target.Widgets = copyWidgets(*patch.Widgets)
	}
	target.UpdatedAt = time.Now()

	r.persistLayouts(ctx)
}

// Delete removes the layout matching id. The default layout is protected.
// When the active layout is deleted, the first remaining layout becomes
// active.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.findLayout(id)
	if target == nil {
		return nil
	}
	if target.IsDefault {
		return ErrDefaultLayout
	}

	remaining := r.layouts[:0]
	for _, l := range r.layouts {
		if l.ID != id {
			remaining = append(remaining, l)
		}
	}
	r.layouts = remaining
	r.persistLayouts(ctx)

	if r.activeID == id {
		if len(r.layouts) > 0 {
			r.activeID = r.layouts[0].ID
		} else {
			r.activeID = ""
		}
		r.persistActiveID(ctx)
	}
	return nil
}

// SetActive sets and persists the active layout id. Membership is not
// validated here; Load repairs a dangling pointer on the next start.
func (r *Repository) SetActive(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activeID = id
	r.persistActiveID(ctx)
}

// Layouts returns a snapshot of the layout collection.
func (r *Repository) Layouts() []DashboardLayout {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]DashboardLayout, len(r.layouts))
	for i, l := range r.layouts {
		out[i] = l
		out[i].Widgets = copyWidgets(l.Widgets)
	}
	return out
}

// Active returns a copy of the active layout, or nil when there is none.
func (r *Repository) Active() *DashboardLayout {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.findLayout(r.activeID)
	if active == nil {
		return nil
	}
	out := *active
	out.Widgets = copyWidgets(active.Widgets)
	return &out
}

// ActiveID returns the active layout pointer.
func (r *Repository) ActiveID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeID
}

// Loading reports whether a Load is in progress.
func (r *Repository) Loading() bool {
	return r.loading.Load()
}

// findLayout returns a pointer into r.layouts. Callers must hold r.mu.
func (r *Repository) findLayout(id string) *DashboardLayout {
	if id == "" {
		return nil
	}
	for i := range r.layouts {
		if r.layouts[i].ID == id {
			return &r.layouts[i]
		}
	}
	return nil
}

func (r *Repository) readLayouts(ctx context.Context) ([]DashboardLayout, error) {
	raw, err := r.store.GetItem(ctx, layoutsKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var layouts []DashboardLayout
	if err := json.Unmarshal([]byte(raw), &layouts); err != nil {
		return nil, err
	}
	return layouts, nil
}

// persistLayouts writes the complete layout list. Callers must hold r.mu.
func (r *Repository) persistLayouts(ctx context.Context) {
	raw, err := json.Marshal(r.layouts)
	if err != nil {
		r.log.Error("failed to encode dashboard layouts", zap.Error(err))
		return
	}
	if err := r.store.SetItem(ctx, layoutsKey, string(raw)); err != nil {
		r.log.Error("failed to persist dashboard layouts", zap.Error(err))
	}
}

// persistActiveID writes the active pointer. Callers must hold r.mu.
func (r *Repository) persistActiveID(ctx context.Context) {
	if r.activeID == "" {
		if err := r.store.RemoveItem(ctx, activeIDKey); err != nil {
			r.log.Error("failed to clear active layout id", zap.Error(err))
		}
		return
	}
	if err := r.store.SetItem(ctx, activeIDKey, r.activeID); err != nil {
		r.log.Error("failed to persist active layout id", zap.Error(err))
	}
}
