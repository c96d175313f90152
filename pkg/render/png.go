package render

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"math"

	"github.com/printworks/photomatrix/pkg/errors"
)

// PrintDPI is the pixel density declared in emitted PNGs.
const PrintDPI = 200

// ihdrEnd is the byte offset of the first chunk after IHDR:
// 8-byte signature + 4 length + 4 type + 13 data + 4 CRC.
const ihdrEnd = 33

// EncodePNG encodes img as PNG with a pHYs chunk declaring dpi. The
// stdlib encoder writes no density metadata, so the chunk is spliced in
// directly after IHDR where ancillary chunks are allowed.
func EncodePNG(img image.Image, dpi int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailure, err, "encode png")
	}
	raw := buf.Bytes()
	if dpi <= 0 || len(raw) < ihdrEnd {
		return raw, nil
	}

	out := make([]byte, 0, len(raw)+21)
	out = append(out, raw[:ihdrEnd]...)
	out = append(out, physChunk(dpi)...)
	out = append(out, raw[ihdrEnd:]...)
	return out, nil
}

// physChunk builds a pHYs chunk for the given dpi. PNG stores density
// as pixels per metre; 200 dpi rounds to 7874 px/m.
func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	data := make([]byte, 9)
	binary.BigEndian.PutUint32(data[0:4], ppm)
	binary.BigEndian.PutUint32(data[4:8], ppm)
	data[8] = 1 // unit: metre

	chunk := make([]byte, 0, 21)
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(data)))
	chunk = append(chunk, u32[:]...)
	chunk = append(chunk, "pHYs"...)
	chunk = append(chunk, data...)

	crc := crc32.NewIEEE()
	crc.Write([]byte("pHYs"))
	crc.Write(data)
	binary.BigEndian.PutUint32(u32[:], crc.Sum32())
	chunk = append(chunk, u32[:]...)
	return chunk
}
