package render

import (
	"image"

	"github.com/disintegration/imaging"
)

// Enhance applies the finishing pass used for print output: a light
// unsharp mask and a 5% saturation lift. Kept separate from Composite
// so callers can skip it (it is opt-in at the pipeline level).
func Enhance(img image.Image) *image.NRGBA {
	sharpened := imaging.Sharpen(img, 1.0)
	return imaging.AdjustSaturation(sharpened, 5)
}
