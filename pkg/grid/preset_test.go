package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/printworks/photomatrix/pkg/errors"
)

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPresetsOverride(t *testing.T) {
	path := writePresets(t, `
[landscape]
cell_height = 540
row_spacing = 225
margin_y = 225
`)

	specs, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}

	ls := specs["landscape"]
	if ls.CellHeight != 540 || ls.RowSpacing != 225 || ls.MarginY != 225 {
		t.Errorf("landscape override not applied: %+v", ls)
	}
	// Unset fields keep their defaults.
	if ls.CellWidth != 840 {
		t.Errorf("CellWidth = %d, want 840", ls.CellWidth)
	}
	// Untouched layouts stay at defaults.
	if specs["square"] != SquareLayout {
		t.Errorf("square spec modified: %+v", specs["square"])
	}
}

func TestLoadPresetsUnknownLayout(t *testing.T) {
	path := writePresets(t, `
[panorama]
cell_width = 1000
`)

	_, err := LoadPresets(path)
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("unknown layout error = %v, want INVALID_PRESET", err)
	}
}

func TestLoadPresetsInvalidPartition(t *testing.T) {
	// 3·800 = 2400 ≠ 2520 with no margins or spacing.
	path := writePresets(t, `
[square]
cell_width = 800
`)

	_, err := LoadPresets(path)
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("bad partition error = %v, want INVALID_LAYOUT", err)
	}
}

func TestLoadPresetsBadTOML(t *testing.T) {
	path := writePresets(t, `[square`)

	_, err := LoadPresets(path)
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("parse error = %v, want INVALID_PRESET", err)
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	_, err := LoadPresets(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
