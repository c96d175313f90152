package render

import (
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Backgrounds derives n pad-cell backgrounds of w×h pixels from the
// batch's photos, for composites that fill their empty slots instead of
// leaving them transparent. Background i picks up the dominant color of
// photo i (cycling), lightened so the pads read as backdrop rather than
// content, with a faint tile texture to avoid dead-flat areas.
//
// The result is fully deterministic for a given photo set.
func Backgrounds(photos []image.Image, n, w, h int) []*image.NRGBA {
	if n <= 0 || len(photos) == 0 {
		return nil
	}

	colors := make([]color.NRGBA, len(photos))
	for i, p := range photos {
		// Downscale before color extraction; the dominant hue survives.
		small := imaging.Resize(p, 64, 0, imaging.NearestNeighbor)
		colors[i] = soften(dominantcolor.Find(small))
	}

	pads := make([]*image.NRGBA, n)
	for i := range pads {
		pads[i] = paintBackground(colors[i%len(colors)], w, h)
	}
	return pads
}

// soften lightens a dominant color toward pastel.
func soften(c color.RGBA) color.NRGBA {
	lift := func(v uint8) uint8 {
		l := int(float64(v)*1.2) + 50
		if l > 255 {
			l = 255
		}
		return uint8(l)
	}
	return color.NRGBA{R: lift(c.R), G: lift(c.G), B: lift(c.B), A: 255}
}

// paintBackground fills a w×h canvas with the base color and a subtle
// lattice of slightly shifted tiles.
func paintBackground(base color.NRGBA, w, h int) *image.NRGBA {
	dc := gg.NewContext(w, h)
	dc.SetColor(base)
	dc.Clear()

	shade := func(delta int) color.NRGBA {
		adj := func(v uint8) uint8 {
			n := int(v) + delta
			if n < 0 {
				n = 0
			} else if n > 255 {
				n = 255
			}
			return uint8(n)
		}
		return color.NRGBA{R: adj(base.R), G: adj(base.G), B: adj(base.B), A: 255}
	}

	const step = 140
	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			if (x+y)%(2*step) != 0 {
				continue
			}
			delta := 4
			if (x+y)%(4*step) == 0 {
				delta = -4
			}
			dc.SetColor(shade(delta))
			dc.DrawRectangle(float64(x), float64(y), step/2, step/2)
			dc.Fill()
		}
	}

	return imaging.Clone(dc.Image())
}
