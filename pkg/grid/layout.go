package grid

import (
	"github.com/printworks/photomatrix/pkg/errors"
)

// LayoutSpec describes the uniform cell geometry of one composite.
// All nine cells of a composite share the same spec; mixed-aspect
// photos are force-fit into the chosen cells by the renderer.
//
// Horizontal extents always partition the canvas exactly:
//
//	2·MarginX + 3·CellWidth + 2·ColSpacing = 2520
//
// Vertically the same holds for square and landscape. The portrait grid
// is 3060 px tall; its rows tile edge-to-edge and the grid is centered,
// so MarginY is negative and the outer rows bleed past the canvas.
type LayoutSpec struct {
	Name       string `json:"name"`
	CellWidth  int    `json:"cell_width"`
	CellHeight int    `json:"cell_height"`
	ColSpacing int    `json:"col_spacing"`
	RowSpacing int    `json:"row_spacing"`
	MarginX    int    `json:"margin_x"`
	MarginY    int    `json:"margin_y"`
}

// Built-in layout specs. Cell sizes follow the print templates; spacing
// and margins resolve the 2520 px partition for each cell size.
var (
	// SquareLayout tiles 840×840 cells edge-to-edge: 3·840 = 2520.
	SquareLayout = LayoutSpec{
		Name:       "square",
		CellWidth:  840,
		CellHeight: 840,
	}

	// LandscapeLayout uses 840×560 cells. Columns tile edge-to-edge;
	// the leftover 840 px of height is spread evenly over the two row
	// gaps and the two vertical margins.
	LandscapeLayout = LayoutSpec{
		Name:       "landscape",
		CellWidth:  840,
		CellHeight: 560,
		RowSpacing: 210,
		MarginY:    210,
	}

	// PortraitLayout uses 680×1020 cells with 60 px gutters and 180 px
	// side margins. The 3060 px column of rows is centered vertically,
	// clipping 270 px off the top and bottom rows at the canvas edge.
	PortraitLayout = LayoutSpec{
		Name:       "portrait",
		CellWidth:  680,
		CellHeight: 1020,
		ColSpacing: 60,
		MarginX:    180,
		MarginY:    -270,
	}
)

// Specs returns the built-in layouts keyed by name.
func Specs() map[string]LayoutSpec {
	return map[string]LayoutSpec{
		SquareLayout.Name:    SquareLayout,
		LandscapeLayout.Name: LandscapeLayout,
		PortraitLayout.Name:  PortraitLayout,
	}
}

// specFor maps a class to its layout spec.
func specFor(c Class) LayoutSpec {
	switch c {
	case Landscape:
		return LandscapeLayout
	case Portrait:
		return PortraitLayout
	default:
		return SquareLayout
	}
}

// SelectLayout picks one layout for a whole composite from the batch's
// classified photos: the plurality class wins, with ties broken in
// class priority order (square > landscape > portrait). A uniform cell
// geometry avoids jagged grids on the fixed canvas.
func SelectLayout(classes []Class) LayoutSpec {
	var counts [3]int
	for _, c := range classes {
		counts[c]++
	}
	best := Square
	for _, c := range []Class{Square, Landscape, Portrait} {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return specFor(best)
}

// Validate checks that a spec partitions the canvas without cell
// overlap. The horizontal axis must sum to exactly CanvasSize; the
// vertical axis may bleed (portrait) but rows must not overlap.
func (s LayoutSpec) Validate() error {
	if s.CellWidth <= 0 || s.CellHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidLayout,
			"layout %q: non-positive cell size %dx%d", s.Name, s.CellWidth, s.CellHeight)
	}
	width := 2*s.MarginX + Cols*s.CellWidth + (Cols-1)*s.ColSpacing
	if width != CanvasSize {
		return errors.New(errors.ErrCodeInvalidLayout,
			"layout %q: horizontal extent %d, want %d", s.Name, width, CanvasSize)
	}
	if s.ColSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidLayout,
			"layout %q: columns overlap (spacing %d)", s.Name, s.ColSpacing)
	}
	if s.RowSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidLayout,
			"layout %q: rows overlap (spacing %d)", s.Name, s.RowSpacing)
	}
	return nil
}
