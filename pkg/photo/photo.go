// Package photo provides the photo value type and the thin I/O layer
// that loads and validates input images.
//
// Photos are immutable once loaded: the pipeline classifies, crops, and
// composites from the decoded image but never mutates it. Decoding goes
// through the imaging library so JPEG EXIF orientation is applied at
// load time; WEBP support comes from the x/image decoder registration
// in load.go.
package photo

import (
	"image"

	"github.com/printworks/photomatrix/pkg/grid"
)

// Photo is one validated input image with its derived geometry.
type Photo struct {
	Path   string
	Image  image.Image
	Width  int
	Height int
}

// AspectRatio returns width/height.
func (p *Photo) AspectRatio() float64 {
	return float64(p.Width) / float64(p.Height)
}

// Class returns the photo's aspect class.
func (p *Photo) Class() grid.Class {
	return grid.Classify(p.AspectRatio())
}
