package render

import (
	"image"
	"image/color"
	"testing"
)

// testImage builds a w×h image filled with c.
func testImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestCellExactDimensions(t *testing.T) {
	tests := []struct {
		name     string
		srcW     int
		srcH     int
		cellW    int
		cellH    int
	}{
		{"landscape into square", 1600, 900, 840, 840},
		{"portrait into square", 900, 1600, 840, 840},
		{"square into landscape", 1000, 1000, 840, 560},
		{"square into portrait", 1000, 1000, 680, 1020},
		{"upscale small source", 600, 600, 840, 840},
		{"extreme panorama", 4000, 600, 680, 1020},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testImage(tt.srcW, tt.srcH, color.NRGBA{200, 100, 50, 255})
			got, err := Cell(src, tt.cellW, tt.cellH)
			if err != nil {
				t.Fatalf("Cell: %v", err)
			}
			b := got.Bounds()
			if b.Dx() != tt.cellW || b.Dy() != tt.cellH {
				t.Errorf("output %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.cellW, tt.cellH)
			}
		})
	}
}

func TestCellCenterCrop(t *testing.T) {
	// Left third red, middle third green, right third blue. A center
	// crop to a tall cell must keep green in the middle and trim red
	// and blue equally.
	src := image.NewNRGBA(image.Rect(0, 0, 900, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 900; x++ {
			switch {
			case x < 300:
				src.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
			case x < 600:
				src.SetNRGBA(x, y, color.NRGBA{0, 255, 0, 255})
			default:
				src.SetNRGBA(x, y, color.NRGBA{0, 0, 255, 255})
			}
		}
	}

	got, err := Cell(src, 300, 300)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	c := got.NRGBAAt(150, 150)
	if c.G < 200 || c.R > 55 || c.B > 55 {
		t.Errorf("center pixel = %+v, want green (crop not centered)", c)
	}
}

func TestCellInvalidInput(t *testing.T) {
	src := testImage(100, 100, color.NRGBA{A: 255})

	if _, err := Cell(nil, 100, 100); err == nil {
		t.Error("nil source should fail")
	}
	if _, err := Cell(src, 0, 100); err == nil {
		t.Error("zero width should fail")
	}
	if _, err := Cell(src, 100, -1); err == nil {
		t.Error("negative height should fail")
	}
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Cell(empty, 100, 100); err == nil {
		t.Error("empty source should fail")
	}
}
