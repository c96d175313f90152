package grid

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/printworks/photomatrix/pkg/errors"
)

// preset is the TOML shape of one layout override. Optional fields are
// pointers so that omitted values fall back to the built-in spec.
type preset struct {
	CellWidth  *int `toml:"cell_width"`
	CellHeight *int `toml:"cell_height"`
	ColSpacing *int `toml:"col_spacing"`
	RowSpacing *int `toml:"row_spacing"`
	MarginX    *int `toml:"margin_x"`
	MarginY    *int `toml:"margin_y"`
}

// LoadPresets reads layout overrides from a TOML file and returns the
// effective specs by name. Sections are keyed by layout name:
//
//	[landscape]
//	cell_height = 540
//	row_spacing = 225
//	margin_y    = 225
//
// Unknown section names and invalid partitions are rejected so a typo
// cannot silently fall back to defaults.
func LoadPresets(path string) (map[string]LayoutSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read presets %s", path)
	}

	var raw map[string]preset
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse presets %s", path)
	}

	specs := Specs()
	for name, p := range raw {
		base, ok := specs[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidPreset,
				"unknown layout %q (must be square, landscape, or portrait)", name)
		}
		merged := p.apply(base)
		if err := merged.Validate(); err != nil {
			return nil, err
		}
		specs[name] = merged
	}
	return specs, nil
}

// apply overlays the preset's set fields onto a base spec.
func (p preset) apply(base LayoutSpec) LayoutSpec {
	if p.CellWidth != nil {
		base.CellWidth = *p.CellWidth
	}
	if p.CellHeight != nil {
		base.CellHeight = *p.CellHeight
	}
	if p.ColSpacing != nil {
		base.ColSpacing = *p.ColSpacing
	}
	if p.RowSpacing != nil {
		base.RowSpacing = *p.RowSpacing
	}
	if p.MarginX != nil {
		base.MarginX = *p.MarginX
	}
	if p.MarginY != nil {
		base.MarginY = *p.MarginY
	}
	return base
}
