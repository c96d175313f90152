package render

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/printworks/photomatrix/pkg/errors"
)

// Cell renders one photo into a fragment of exactly w×h pixels. The
// source is center-cropped to the target aspect ratio (trimming equal
// margins off the longer axis) and then resampled with Lanczos, so the
// cell is filled edge-to-edge with no letterboxing and no distortion.
func Cell(src image.Image, w, h int) (*image.NRGBA, error) {
	if src == nil {
		return nil, errors.New(errors.ErrCodeRenderFailure, "nil source image")
	}
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeRenderFailure, "invalid cell size %dx%d", w, h)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailure, "empty source image")
	}
	return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos), nil
}
