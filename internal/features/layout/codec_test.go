package layout

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

func TestExportActiveLayout(t *testing.T) {
	repo := loadedRepo(t)

	export := repo.Export("")
	if export == nil {
		t.Fatal("export of active layout returned nil")
	}
	if export.Name != DefaultLayoutName {
		t.Errorf("name = %q, want %q", export.Name, DefaultLayoutName)
	}
	if export.Version != ExportVersion {
		t.Errorf("version = %q, want %q", export.Version, ExportVersion)
	}
	if export.ExportedAt.IsZero() {
		t.Error("ExportedAt not set")
	}
}

func TestExportUnknownLayoutReturnsNil(t *testing.T) {
	repo := loadedRepo(t)

	if export := repo.Export("missing"); export != nil {
		t.Errorf("export = %+v, want nil", export)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	export := repo.Export(DefaultLayoutID)
	raw, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}

	imported, err := repo.Import(ctx, raw, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	original := repo.Layouts()[0]
	if imported.ID == original.ID {
		t.Error("imported layout must get a fresh id")
	}
	if !reflect.DeepEqual(imported.Widgets, original.Widgets) {
		t.Errorf("round trip changed widgets:\ngot  %+v\nwant %+v", imported.Widgets, original.Widgets)
	}
}

func TestImportNameFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		raw      string
		wantName string
	}{
		{name: "explicit name wins", arg: "Mine", raw: `{"name":"Sales","widgets":[]}`, wantName: "Mine"},
		{name: "derived from descriptor", arg: "", raw: `{"name":"Sales","widgets":[]}`, wantName: "Imported Sales"},
		{name: "generic fallback", arg: "", raw: `{"widgets":[]}`, wantName: "Imported Layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := loadedRepo(t)
			imported, err := repo.Import(context.Background(), []byte(tt.raw), tt.arg)
			if err != nil {
				t.Fatalf("import: %v", err)
			}
			if imported.Name != tt.wantName {
				t.Errorf("name = %q, want %q", imported.Name, tt.wantName)
			}
		})
	}
}

func TestImportWithoutWidgetsUsesSeedSet(t *testing.T) {
	repo := loadedRepo(t)

	imported, err := repo.Import(context.Background(), []byte(`{"name":"Bare"}`), "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(imported.Widgets, SeedWidgets()) {
		t.Errorf("widgets = %+v, want seed set", imported.Widgets)
	}
}

func TestImportInvalidDescriptorFails(t *testing.T) {
	repo := loadedRepo(t)

	_, err := repo.Import(context.Background(), []byte("not a descriptor"), "")
	if err != ErrInvalidLayout {
		t.Fatalf("err = %v, want ErrInvalidLayout", err)
	}
	if len(repo.Layouts()) != 1 {
		t.Error("failed import must not modify the collection")
	}
}

func TestImportAppendsAndPersists(t *testing.T) {
	repo := loadedRepo(t)
	ctx := context.Background()

	imported, err := repo.Import(ctx, []byte(`{"name":"Sales","widgets":[]}`), "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	layouts := repo.Layouts()
	if len(layouts) != 2 {
		t.Fatalf("layouts = %d, want 2", len(layouts))
	}
	if layouts[1].ID != imported.ID {
		t.Errorf("imported layout not appended at the end")
	}
}
