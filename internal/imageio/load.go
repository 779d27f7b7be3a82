package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "image/jpeg"
	_ "image/png"
)

// supportedExts mirrors the upload control: anything else is rejected before
// decoding is attempted.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Supported reports whether the file extension is an accepted image type.
func Supported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// Load opens a jpg/jpeg/png image file and returns it as an RGBA image.
func Load(path string) (*image.RGBA, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("unsupported image type %q (want jpg, jpeg, or png)", filepath.Ext(path))
	}
	img, err := imaging.Open(path)
	if err != nil {
		// imaging registers its own decoders; fall back to whatever the
		// stdlib recognizes before giving up.
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("open %s: %w", path, openErr)
		}
		defer f.Close()
		decoded, _, decErr := image.Decode(f)
		if decErr != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		img = decoded
	}
	return ToRGBA(img), nil
}

// ToRGBA copies any image into a zero-based *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Save writes an image using the encoder matching the file extension.
func Save(path string, img image.Image) error {
	return imaging.Save(img, path)
}
