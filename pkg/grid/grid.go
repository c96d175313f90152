// Package grid implements the placement engine for 3×3 photo composites.
//
// The engine is pure value logic with no I/O: aspect classification,
// layout selection, batch planning, and slot assignment all operate on
// plain ints and floats so that the same decisions are reproducible
// across CLI and API entry points.
//
// # Pipeline position
//
// grid sits between photo loading and rendering:
//
//	photos := photo.Scan(...)        // I/O layer
//	spans := grid.Plan(len(photos))  // batches of ≤9
//	spec := grid.SelectLayout(...)   // per-batch cell geometry
//	slots := grid.Assign(len(batch)) // photo index → grid position
//	render.Composite(...)            // raster output
package grid

import "image"

// Grid geometry constants. The canvas is fixed; cell sizes follow the
// selected layout.
const (
	// CanvasSize is the edge length of the square output canvas in pixels.
	CanvasSize = 2520

	// Rows and Cols define the fixed grid shape.
	Rows = 3
	Cols = 3

	// SlotCount is the number of cells in a composite.
	SlotCount = Rows * Cols
)

// Slot is a cell position in the grid, zero-indexed from the top-left.
type Slot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// FocalSlot is the top-right cell, filled first to carry the visual
// emphasis of the composite.
var FocalSlot = Slot{Row: 0, Col: 2}

// slotOrder is the fill priority: the focal slot first, then row-major
// raster order skipping the focal slot. Short batches leave the tail of
// this sequence empty.
var slotOrder = [SlotCount]Slot{
	{0, 2}, // focal
	{0, 0}, {0, 1},
	{1, 0}, {1, 1}, {1, 2},
	{2, 0}, {2, 1}, {2, 2},
}

// SlotOrder returns the fill priority sequence for a composite.
func SlotOrder() [SlotCount]Slot {
	return slotOrder
}

// Assign maps the photos of a batch onto grid slots. Photo 0 takes the
// focal slot; the rest fill in raster order. The returned slice has one
// entry per photo, in batch order. Batches longer than SlotCount are
// truncated by the planner before they reach this point, but Assign
// guards anyway.
func Assign(batchLen int) []Slot {
	if batchLen <= 0 {
		return nil
	}
	if batchLen > SlotCount {
		batchLen = SlotCount
	}
	slots := make([]Slot, batchLen)
	copy(slots, slotOrder[:batchLen])
	return slots
}

// CellOrigin returns the top-left pixel of a slot's cell under the given
// layout. Portrait origins may be negative: the portrait grid is taller
// than the canvas and bleeds symmetrically past the top and bottom edges.
func (s LayoutSpec) CellOrigin(slot Slot) image.Point {
	return image.Point{
		X: s.MarginX + slot.Col*(s.CellWidth+s.ColSpacing),
		Y: s.MarginY + slot.Row*(s.CellHeight+s.RowSpacing),
	}
}
