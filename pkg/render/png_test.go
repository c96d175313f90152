package render

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	img := testImage(64, 48, color.NRGBA{10, 20, 30, 255})

	data, err := EncodePNG(img, PrintDPI)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode emitted PNG: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("decoded %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestEncodePNGDensityChunk(t *testing.T) {
	img := testImage(16, 16, color.NRGBA{A: 255})

	data, err := EncodePNG(img, PrintDPI)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	// pHYs sits directly after IHDR.
	chunk := data[ihdrEnd:]
	if length := binary.BigEndian.Uint32(chunk[0:4]); length != 9 {
		t.Fatalf("chunk length = %d, want 9", length)
	}
	if typ := string(chunk[4:8]); typ != "pHYs" {
		t.Fatalf("chunk type = %q, want pHYs", typ)
	}
	ppmX := binary.BigEndian.Uint32(chunk[8:12])
	ppmY := binary.BigEndian.Uint32(chunk[12:16])
	if ppmX != 7874 || ppmY != 7874 {
		t.Errorf("density = %d/%d px/m, want 7874 (200 dpi)", ppmX, ppmY)
	}
	if unit := chunk[16]; unit != 1 {
		t.Errorf("unit = %d, want 1 (metre)", unit)
	}
}

func TestEncodePNGZeroDPISkipsChunk(t *testing.T) {
	img := testImage(16, 16, color.NRGBA{A: 255})

	data, err := EncodePNG(img, 0)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if bytes.Contains(data, []byte("pHYs")) {
		t.Error("dpi 0 should not emit a pHYs chunk")
	}
}

func TestEncodePNGPreservesTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.SetNRGBA(2, 2, color.NRGBA{255, 0, 0, 255})

	data, err := EncodePNG(img, PrintDPI)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	_, _, _, a := decoded.At(0, 0).RGBA()
	if a != 0 {
		t.Errorf("untouched pixel alpha = %d, want 0", a)
	}
	_, _, _, a = decoded.At(2, 2).RGBA()
	if a == 0 {
		t.Error("painted pixel lost its alpha")
	}
}
