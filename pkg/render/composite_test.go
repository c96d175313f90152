package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/printworks/photomatrix/pkg/grid"
)

// cellAlphaAt samples the alpha at the center of a slot's cell.
func cellAlphaAt(canvas *image.NRGBA, spec grid.LayoutSpec, slot grid.Slot) uint8 {
	o := spec.CellOrigin(slot)
	x := o.X + spec.CellWidth/2
	y := o.Y + spec.CellHeight/2
	return canvas.NRGBAAt(x, y).A
}

// fragments builds k opaque fragments following the fill order.
func fragments(spec grid.LayoutSpec, k int) []Fragment {
	frags := make([]Fragment, 0, k)
	for _, slot := range grid.Assign(k) {
		frags = append(frags, Fragment{
			Slot:  slot,
			Image: testImage(spec.CellWidth, spec.CellHeight, color.NRGBA{120, 130, 140, 255}),
		})
	}
	return frags
}

func TestCompositeCanvasSize(t *testing.T) {
	canvas := Composite(nil, grid.SquareLayout)
	b := canvas.Bounds()
	if b.Dx() != grid.CanvasSize || b.Dy() != grid.CanvasSize {
		t.Errorf("canvas %dx%d, want %dx%d", b.Dx(), b.Dy(), grid.CanvasSize, grid.CanvasSize)
	}
}

func TestCompositeFullBatch(t *testing.T) {
	for name, spec := range grid.Specs() {
		canvas := Composite(fragments(spec, grid.SlotCount), spec)
		for _, slot := range grid.SlotOrder() {
			if a := cellAlphaAt(canvas, spec, slot); a != 255 {
				t.Errorf("%s: slot %v alpha = %d, want opaque", name, slot, a)
			}
		}
	}
}

func TestCompositePartialBatchTransparency(t *testing.T) {
	spec := grid.SquareLayout
	for k := 1; k < grid.SlotCount; k++ {
		canvas := Composite(fragments(spec, k), spec)

		filled := make(map[grid.Slot]bool, k)
		for _, s := range grid.Assign(k) {
			filled[s] = true
		}

		transparent := 0
		for _, slot := range grid.SlotOrder() {
			a := cellAlphaAt(canvas, spec, slot)
			switch {
			case filled[slot] && a != 255:
				t.Errorf("k=%d: filled slot %v alpha = %d", k, slot, a)
			case !filled[slot] && a != 0:
				t.Errorf("k=%d: empty slot %v alpha = %d", k, slot, a)
			case !filled[slot]:
				transparent++
			}
		}
		if transparent != grid.SlotCount-k {
			t.Errorf("k=%d: %d transparent cells, want %d", k, transparent, grid.SlotCount-k)
		}
	}
}

func TestCompositeFocalAlwaysFilled(t *testing.T) {
	spec := grid.LandscapeLayout
	for k := 1; k <= grid.SlotCount; k++ {
		canvas := Composite(fragments(spec, k), spec)
		if a := cellAlphaAt(canvas, spec, grid.FocalSlot); a != 255 {
			t.Errorf("k=%d: focal slot alpha = %d, want opaque", k, a)
		}
	}
}

func TestCompositeNilFragmentStaysTransparent(t *testing.T) {
	// A failed cell render is substituted with a nil fragment; its slot
	// must stay transparent instead of aborting the composite.
	spec := grid.SquareLayout
	frags := fragments(spec, grid.SlotCount)
	frags[4].Image = nil

	canvas := Composite(frags, spec)
	if a := cellAlphaAt(canvas, spec, frags[4].Slot); a != 0 {
		t.Errorf("failed slot alpha = %d, want transparent", a)
	}
	if a := cellAlphaAt(canvas, spec, frags[0].Slot); a != 255 {
		t.Errorf("healthy slot alpha = %d, want opaque", a)
	}
}

func TestCompositePortraitBleedClipped(t *testing.T) {
	// Portrait top-row cells start above the canvas; drawing must clip
	// without panicking and still cover the visible band.
	spec := grid.PortraitLayout
	canvas := Composite(fragments(spec, grid.SlotCount), spec)

	o := spec.CellOrigin(grid.Slot{Row: 0, Col: 0})
	if a := canvas.NRGBAAt(o.X+10, 0).A; a != 255 {
		t.Errorf("top edge alpha = %d, want opaque", a)
	}
	if a := canvas.NRGBAAt(o.X+10, grid.CanvasSize-1).A; a != 255 {
		t.Errorf("bottom edge alpha = %d, want opaque", a)
	}
}

func TestCompositeGutterTransparent(t *testing.T) {
	// Portrait column gutters are never painted.
	spec := grid.PortraitLayout
	canvas := Composite(fragments(spec, grid.SlotCount), spec)

	gutterX := spec.MarginX + spec.CellWidth + spec.ColSpacing/2
	if a := canvas.NRGBAAt(gutterX, grid.CanvasSize/2).A; a != 0 {
		t.Errorf("gutter alpha = %d, want transparent", a)
	}
}
