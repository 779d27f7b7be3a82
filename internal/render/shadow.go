package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow applied to exported annotated
// images.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a conservative drop shadow that works well for
// most exports.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  24,
		Offset:  image.Pt(16, 16),
		Opacity: 0.55,
	}
}

// ApplyShadow composites img over a blurred drop shadow. The result always
// has a non-negative origin. The returned point is where the original
// image's top-left corner landed inside the expanded canvas.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	srcBounds := img.Bounds()
	padded := srcBounds
	if radius > 0 {
		padded = padded.Inset(-radius)
	}
	shadowBounds := padded.Add(opts.Offset)
	composite := srcBounds.Union(shadowBounds)
	dstRect := composite.Sub(composite.Min)
	if dstRect.Dx() <= 0 || dstRect.Dy() <= 0 {
		return img, image.Point{}
	}

	shift := srcBounds.Min.Sub(composite.Min)
	shadowOrigin := shadowBounds.Min.Sub(composite.Min)

	// Build an alpha mask from the source, then blur it.
	mask := image.NewGray(padded.Sub(padded.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			a := img.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
		}
	}
	blurred := boxBlurGray(mask, radius)

	dst := image.NewRGBA(dstRect)
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	alpha := uint8(opacity*255 + 0.5)
	if alpha > 0 {
		draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin),
			image.NewUniform(color.RGBA{0, 0, 0, alpha}), image.Point{},
			blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, srcBounds.Sub(composite.Min), img, srcBounds.Min, draw.Over)
	return dst, shift
}

// boxBlurGray runs a separable box blur over the mask using per-row and
// per-column prefix sums.
func boxBlurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			sum := prefix[x1+1] - prefix[x0]
			tmp.Pix[tmpStart+x] = uint8(sum / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			sum := prefix[y1+1] - prefix[y0]
			dst.Pix[y*dst.Stride+x] = uint8(sum / (y1 - y0 + 1))
		}
	}
	return dst
}
