package render

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/imageio"
)

// Display resamples the source image to the mapper's display size using
// Lanczos filtering. The result is a fresh RGBA the overlay pass can draw on.
func Display(src image.Image, m annotate.Mapper) *image.RGBA {
	w, h := m.DisplaySize()
	resized := imaging.Resize(src, w, h, imaging.Lanczos)
	return imageio.ToRGBA(resized)
}

// Annotated renders the full export image: display-sized copy of src with
// every annotation drawn on top.
func Annotated(src image.Image, annotations []annotate.Annotation, m annotate.Mapper, opts MarkerOptions) *image.RGBA {
	dst := Display(src, m)
	Overlay(dst, annotations, m, opts)
	return dst
}
