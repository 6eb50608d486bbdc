package layout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-merchant/internal/kvstore"

	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) (*Repository, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	return NewRepository(store, zap.NewNop()), store
}

func TestLoadSeedsEmptyStorage(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	repo.Load(ctx)

	layouts := repo.Layouts()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 layout after seeding, got %d", len(layouts))
	}
	if layouts[0].Name != DefaultLayoutName {
		t.Errorf("seed layout name = %q, want %q", layouts[0].Name, DefaultLayoutName)
	}
	if !layouts[0].IsDefault {
		t.Error("seed layout should have IsDefault = true")
	}
	if len(layouts[0].Widgets) != 7 {
		t.Errorf("seed layout has %d widgets, want 7", len(layouts[0].Widgets))
	}
	if repo.ActiveID() != DefaultLayoutID {
		t.Errorf("active id = %q, want %q", repo.ActiveID(), DefaultLayoutID)
	}

	// Seed must be persisted, not just in memory
	if _, err := store.GetItem(ctx, "@dashboard_layouts"); err != nil {
		t.Errorf("seeded layouts were not persisted: %v", err)
	}
	if _, err := store.GetItem(ctx, "@active_layout_id"); err != nil {
		t.Errorf("active id was not persisted: %v", err)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	repo.Load(ctx)
	repo.Load(ctx)

	// Re-load through a fresh repository against the same store
	repo2 := NewRepository(store, zap.NewNop())
	repo2.Load(ctx)

	if got := len(repo2.Layouts()); got != 1 {
		t.Fatalf("expected exactly one Default Dashboard after repeated loads, got %d", got)
	}
}

func TestLoadDegradesOnCorruptStorage(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	store.SetItem(ctx, "@dashboard_layouts", "{not json")
	repo.Load(ctx)

	layouts := repo.Layouts()
	if len(layouts) != 1 || layouts[0].Name != DefaultLayoutName {
		t.Fatalf("corrupt storage should fall back to the default layout, got %+v", layouts)
	}
	if repo.ActiveID() != DefaultLayoutID {
		t.Errorf("active id = %q, want %q", repo.ActiveID(), DefaultLayoutID)
	}

	// Fallback is in-memory only; the corrupt value must not be overwritten
	raw, err := store.GetItem(ctx, "@dashboard_layouts")
	if err != nil || raw != "{not json" {
		t.Errorf("load overwrote storage on parse error: %q, %v", raw, err)
	}
}

func TestLoadRepairsDanglingActiveID(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	repo.Load(ctx)
	repo.Create(ctx, "Second", "")

	store.SetItem(ctx, "@active_layout_id", "gone")

	repo2 := NewRepository(store, zap.NewNop())
	repo2.Load(ctx)

	if repo2.ActiveID() != repo2.Layouts()[0].ID {
		t.Errorf("dangling active id not repaired: got %q", repo2.ActiveID())
	}
}

func TestCreateCopiesWidgets(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	tests := []struct {
		name        string
		basedOn     string
		wantWidgets int
	}{
		{name: "from active layout", basedOn: "", wantWidgets: 7},
		{name: "from named layout", basedOn: DefaultLayoutID, wantWidgets: 7},
		{name: "unknown basedOn falls back to active", basedOn: "missing", wantWidgets: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := repo.Create(ctx, "My View", tt.basedOn)
			if created.ID == "" || created.ID == DefaultLayoutID {
				t.Errorf("created layout id = %q, want fresh id", created.ID)
			}
			if created.IsDefault {
				t.Error("created layout must not be default")
			}
			if len(created.Widgets) != tt.wantWidgets {
				t.Errorf("widgets = %d, want %d", len(created.Widgets), tt.wantWidgets)
			}
		})
	}
}

func TestCreateDoesNotAliasSourceWidgets(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	created := repo.Create(ctx, "Copy", DefaultLayoutID)
	repo.SetActive(ctx, created.ID)
	repo.RemoveWidget(ctx, created.Widgets[0].ID)

	original := repo.Layouts()[0]
	if len(original.Widgets) != 7 {
		t.Errorf("mutating the copy changed the source layout: %d widgets", len(original.Widgets))
	}
}

func TestUpdateMergesFields(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	name := "Renamed"
	repo.Update(ctx, DefaultLayoutID, LayoutPatch{Name: &name})

	layouts := repo.Layouts()
	if layouts[0].Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", layouts[0].Name)
	}
	if !layouts[0].UpdatedAt.After(layouts[0].CreatedAt) && !layouts[0].UpdatedAt.Equal(layouts[0].CreatedAt) {
		t.Error("UpdatedAt not refreshed")
	}
	if !layouts[0].IsDefault {
		t.Error("unpatched field changed")
	}
}

func TestDeleteDefaultLayoutFails(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	err := repo.Delete(ctx, DefaultLayoutID)
	if !errors.Is(err, ErrDefaultLayout) {
		t.Fatalf("delete default: err = %v, want ErrDefaultLayout", err)
	}
	if len(repo.Layouts()) != 1 {
		t.Error("failed delete must leave the collection unchanged")
	}
}

func TestDeleteActiveLayoutRepairsPointer(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	created := repo.Create(ctx, "Temp", "")
	repo.SetActive(ctx, created.ID)

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	active := repo.ActiveID()
	if active != DefaultLayoutID {
		t.Errorf("active id after delete = %q, want %q", active, DefaultLayoutID)
	}

	// Repair must be persisted
	persisted, err := store.GetItem(ctx, "@active_layout_id")
	if err != nil || persisted != DefaultLayoutID {
		t.Errorf("persisted active id = %q, %v", persisted, err)
	}
}

func TestDeleteUnknownLayoutIsNoop(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if len(repo.Layouts()) != 1 {
		t.Error("collection changed")
	}
}

func TestSetActivePersistsWithoutValidation(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	repo.SetActive(ctx, "not-a-member")

	persisted, err := store.GetItem(ctx, "@active_layout_id")
	if err != nil || persisted != "not-a-member" {
		t.Errorf("persisted active id = %q, %v", persisted, err)
	}
}

func TestMutationsSurviveReload(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	created := repo.Create(ctx, "My View", "")
	repo.SetActive(ctx, created.ID)

	repo2 := NewRepository(store, zap.NewNop())
	repo2.Load(ctx)

	if len(repo2.Layouts()) != 2 {
		t.Fatalf("expected 2 layouts after reload, got %d", len(repo2.Layouts()))
	}
	if repo2.ActiveID() != created.ID {
		t.Errorf("active id after reload = %q, want %q", repo2.ActiveID(), created.ID)
	}
}

func TestPersistedDatesRoundTrip(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	repo.Load(ctx)

	raw, err := store.GetItem(ctx, "@dashboard_layouts")
	if err != nil {
		t.Fatalf("get layouts: %v", err)
	}

	var decoded []DashboardLayout
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("persisted layouts are not valid JSON: %v", err)
	}
	if decoded[0].CreatedAt.IsZero() {
		t.Error("CreatedAt did not survive serialization")
	}
}

type gatedStore struct {
	kvstore.Store
	reading chan struct{}
	release chan struct{}
}

func (g *gatedStore) GetItem(ctx context.Context, key string) (string, error) {
	select {
	case <-g.reading:
	default:
		close(g.reading)
		<-g.release
	}
	return g.Store.GetItem(ctx, key)
}

func TestLoadingObservableWhileLoadInFlight(t *testing.T) {
	gate := &gatedStore{
		Store:   kvstore.NewMemoryStore(),
		reading: make(chan struct{}),
		release: make(chan struct{}),
	}
	repo := NewRepository(gate, zap.NewNop())

	done := make(chan struct{})
	go func() {
		repo.Load(context.Background())
		close(done)
	}()

	<-gate.reading
	if !repo.Loading() {
		t.Error("Loading() = false while Load is blocked on storage")
	}

	close(gate.release)
	<-done
	if repo.Loading() {
		t.Error("Loading() = true after Load returned")
	}
}

type failingStore struct {
	kvstore.Store
}

func (f *failingStore) SetItem(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func TestWriteFailuresAreSwallowed(t *testing.T) {
	repo := NewRepository(&failingStore{Store: kvstore.NewMemoryStore()}, zap.NewNop())
	ctx := context.Background()
	repo.Load(ctx)

	created := repo.Create(ctx, "Unsaved", "")

	// In-memory state reflects the change even though persistence failed
	if len(repo.Layouts()) != 2 {
		t.Fatalf("in-memory state lost the mutation: %d layouts", len(repo.Layouts()))
	}
	if created.Name != "Unsaved" {
		t.Errorf("created layout = %+v", created)
	}
}
