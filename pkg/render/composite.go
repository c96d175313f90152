package render

import (
	"image"
	"image/draw"

	"github.com/printworks/photomatrix/pkg/grid"
)

// Fragment is one rendered cell ready for placement. A nil Image marks
// a slot whose photo failed to render; its cell stays transparent so a
// single bad photo cannot abort the composite.
type Fragment struct {
	Slot  grid.Slot
	Image image.Image
}

// Composite paints fragments onto a fresh transparent canvas at their
// slots' cell origins. Slots without a fragment keep alpha 0. Portrait
// cells with negative origins are clipped at the canvas edge by the
// draw package.
func Composite(fragments []Fragment, spec grid.LayoutSpec) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, grid.CanvasSize, grid.CanvasSize))
	for _, f := range fragments {
		if f.Image == nil {
			continue
		}
		o := spec.CellOrigin(f.Slot)
		rect := image.Rect(o.X, o.Y, o.X+spec.CellWidth, o.Y+spec.CellHeight)
		draw.Draw(canvas, rect, f.Image, f.Image.Bounds().Min, draw.Over)
	}
	return canvas
}
