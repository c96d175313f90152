package photo

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	// Register WEBP decoding; JPEG and PNG are registered by imaging.
	_ "golang.org/x/image/webp"

	"github.com/printworks/photomatrix/pkg/errors"
)

// MinDimension is the smallest acceptable width or height in pixels.
// Anything below this prints too soft at 200 dpi cell sizes.
const MinDimension = 500

// supported extensions, lowercase.
var supportedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Load decodes and validates a photo file. JPEG orientation metadata is
// applied during decode. Undersized or undecodable files return an
// INVALID_PHOTO error so callers can skip them and keep going.
func Load(path string) (*Photo, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPhoto, err, "decode %s", path)
	}
	return validated(img, path)
}

// Decode decodes and validates a photo from a stream. The name is kept
// for logging and error messages only.
func Decode(r io.Reader, name string) (*Photo, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPhoto, err, "decode %s", name)
	}
	return validated(img, name)
}

func validated(img image.Image, path string) (*Photo, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < MinDimension || h < MinDimension {
		return nil, errors.New(errors.ErrCodeInvalidPhoto,
			"%s: %dx%d below minimum %dpx", path, w, h, MinDimension)
	}
	return &Photo{Path: path, Image: img, Width: w, Height: h}, nil
}

// Scan lists the photo files in a directory, sorted lexicographically
// so batch order is deterministic across runs. Non-photo files are
// ignored; subdirectories are not descended into.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scan %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
