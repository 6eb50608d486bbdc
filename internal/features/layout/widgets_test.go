package layout

import (
	"context"
	"testing"

	"go-merchant/internal/kvstore"

	"go.uber.org/zap"
)

func loadedRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(kvstore.NewMemoryStore(), zap.NewNop())
	repo.Load(context.Background())
	return repo
}

func TestAddWidgetAppendsWithFreshID(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	id := repo.AddWidget(ctx, WidgetConfig{
		Type:            WidgetTypeMetric,
		Title:           "X",
		Size:            WidgetSizeSmall,
		Position:        WidgetPosition{X: 0, Y: 0},
		IsVisible:       true,
		RefreshInterval: 30,
	})
	if id == "" {
		t.Fatal("AddWidget returned empty id")
	}

	active := repo.Active()
	last := active.Widgets[len(active.Widgets)-1]
	if last.ID != id || last.Title != "X" {
		t.Errorf("appended widget = %+v, want id %q title X at the end", last, id)
	}
}

func TestAddWidgetIDsAreUnique(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for _, w := range repo.Active().Widgets {
		seen[w.ID] = true
	}
	for i := 0; i < 50; i++ {
		id := repo.AddWidget(ctx, WidgetConfig{Type: WidgetTypeMetric, Title: "W", Size: WidgetSizeSmall})
		if seen[id] {
			t.Fatalf("duplicate widget id %q", id)
		}
		seen[id] = true
	}
}

func TestCreateThenAddWidget(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	created := repo.Create(ctx, "My View", "")
	repo.SetActive(ctx, created.ID)

	repo.AddWidget(ctx, WidgetConfig{
		Type:            WidgetTypeMetric,
		Title:           "X",
		Size:            WidgetSizeSmall,
		Position:        WidgetPosition{X: 0, Y: 0},
		IsVisible:       true,
		RefreshInterval: 30,
	})

	matches := 0
	for _, w := range repo.Active().Widgets {
		if w.Title == "X" {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one widget titled X, got %d", matches)
	}
}

func TestUpdateWidgetMergesOnlyPatchedFields(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	target := repo.Active().Widgets[0]
	title := "Renamed"
	repo.UpdateWidget(ctx, target.ID, WidgetPatch{Title: &title})

	got := repo.Active().Widgets[0]
	if got.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", got.Title)
	}
	if got.Size != target.Size || got.Position != target.Position {
		t.Error("unpatched fields changed")
	}

	// Non-matching widgets untouched
	if repo.Active().Widgets[1] != repo.Layouts()[0].Widgets[1] {
		t.Error("sibling widget changed")
	}
}

func TestRemoveWidget(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	target := repo.Active().Widgets[0]
	before := len(repo.Active().Widgets)

	repo.RemoveWidget(ctx, target.ID)

	active := repo.Active()
	if len(active.Widgets) != before-1 {
		t.Fatalf("widget count = %d, want %d", len(active.Widgets), before-1)
	}
	for _, w := range active.Widgets {
		if w.ID == target.ID {
			t.Errorf("widget %q still present", target.ID)
		}
	}
}

func TestMoveAndResizeWidget(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()
	target := repo.Active().Widgets[0]

	repo.MoveWidget(ctx, target.ID, WidgetPosition{X: 5, Y: 9})
	repo.ResizeWidget(ctx, target.ID, WidgetSizeLarge)

	got := repo.Active().Widgets[0]
	if got.Position != (WidgetPosition{X: 5, Y: 9}) {
		t.Errorf("position = %+v", got.Position)
	}
	if got.Size != WidgetSizeLarge {
		t.Errorf("size = %q", got.Size)
	}
	if got.Title != target.Title {
		t.Error("move/resize changed unrelated fields")
	}
}

func TestToggleVisibilityFlipsAndRestores(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()
	target := repo.Active().Widgets[0]

	if !target.IsVisible {
		t.Fatalf("seed widget %q should start visible", target.ID)
	}

	repo.ToggleVisibility(ctx, target.ID)
	if repo.Active().Widgets[0].IsVisible {
		t.Error("first toggle: widget still visible")
	}

	repo.ToggleVisibility(ctx, target.ID)
	if !repo.Active().Widgets[0].IsVisible {
		t.Error("second toggle: widget not restored")
	}
}

func TestToggleVisibilityUnknownIDIsNoop(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	before := repo.Active().Widgets
	repo.ToggleVisibility(ctx, "missing")

	after := repo.Active().Widgets
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("widget %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestVisibleWidgetsFilterPreservesOrder(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	widgets := repo.Active().Widgets
	repo.ToggleVisibility(ctx, widgets[1].ID)
	repo.ToggleVisibility(ctx, widgets[4].ID)

	visible := repo.VisibleWidgets()
	if len(visible) != len(widgets)-2 {
		t.Fatalf("visible = %d, want %d", len(visible), len(widgets)-2)
	}

	// Order must match the widget sequence filtered to IsVisible
	want := make([]string, 0, len(widgets))
	for _, w := range repo.Active().Widgets {
		if w.IsVisible {
			want = append(want, w.ID)
		}
	}
	for i, w := range visible {
		if w.ID != want[i] {
			t.Errorf("visible[%d] = %q, want %q", i, w.ID, want[i])
		}
	}
}

func TestResetToDefaultKeepsIdentity(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	created := repo.Create(ctx, "Custom", "")
	repo.SetActive(ctx, created.ID)
	repo.AddWidget(ctx, WidgetConfig{Type: WidgetTypeChart, Title: "Extra"})

	repo.ResetToDefault(ctx)

	active := repo.Active()
	if active.ID != created.ID || active.Name != "Custom" {
		t.Errorf("reset changed identity: %q %q", active.ID, active.Name)
	}
	if len(active.Widgets) != len(SeedWidgets()) {
		t.Errorf("widgets = %d, want seed count %d", len(active.Widgets), len(SeedWidgets()))
	}
}

func TestWidgetOpsWithoutActiveLayoutAreNoops(t *testing.T) {
	// No Load: repository has no layouts and no active pointer
	repo := NewRepository(kvstore.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	if id := repo.AddWidget(ctx, WidgetConfig{Type: WidgetTypeMetric}); id != "" {
		t.Errorf("AddWidget without active layout returned id %q", id)
	}
	repo.RemoveWidget(ctx, "any")
	repo.ToggleVisibility(ctx, "any")
	repo.ResetToDefault(ctx)
	if widgets := repo.VisibleWidgets(); widgets != nil {
		t.Errorf("VisibleWidgets = %v, want nil", widgets)
	}
}
