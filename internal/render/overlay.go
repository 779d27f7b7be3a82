package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pinpoint/internal/annotate"
)

// MarkerOptions controls how annotation markers and their labels are drawn.
type MarkerOptions struct {
	Radius    int
	Fill      color.RGBA
	Outline   color.RGBA
	LabelText color.RGBA
	LabelBack color.RGBA
	Face      font.Face
}

// DefaultMarkerOptions matches the classic red-dot-with-white-outline marker
// and a white-on-black label box.
func DefaultMarkerOptions() MarkerOptions {
	return MarkerOptions{
		Radius:    annotate.DefaultPointSize,
		Fill:      color.RGBA{255, 0, 0, 255},
		Outline:   color.RGBA{255, 255, 255, 255},
		LabelText: color.RGBA{255, 255, 255, 255},
		LabelBack: color.RGBA{0, 0, 0, 255},
	}
}

func (o MarkerOptions) face() font.Face {
	if o.Face != nil {
		return o.Face
	}
	return basicfont.Face7x13
}

// Overlay draws every annotation onto dst, which is the resized display
// image. Annotations are mapped from original to display coordinates and
// rendered in insertion order so later points land on top. The pass never
// mutates the annotation list.
func Overlay(dst *image.RGBA, annotations []annotate.Annotation, m annotate.Mapper, opts MarkerOptions) {
	for _, a := range annotations {
		dx, dy := m.ToDisplay(a.X, a.Y)
		x := int(dx + 0.5)
		y := int(dy + 0.5)
		DrawMarker(dst, x, y, opts)
		DrawLabel(dst, x+opts.Radius+5, y-opts.Radius, a.Label, opts)
	}
}

// DrawMarker draws a filled circle with a one pixel contrasting outline
// centred at (cx, cy).
func DrawMarker(dst *image.RGBA, cx, cy int, opts MarkerOptions) {
	drawFilledCircle(dst, cx, cy, opts.Radius, opts.Fill)
	drawCircleOutline(dst, cx, cy, opts.Radius, opts.Outline)
}

// DrawPendingMarker draws a hollow marker with a centre dot for a point that
// is awaiting a label.
func DrawPendingMarker(dst *image.RGBA, cx, cy int, opts MarkerOptions) {
	drawCircleOutline(dst, cx, cy, opts.Radius, opts.Fill)
	drawCircleOutline(dst, cx, cy, opts.Radius+1, opts.Outline)
	drawFilledCircle(dst, cx, cy, 2, opts.Fill)
}

// DrawLabel draws text with a filled background box anchored at the text's
// top-left corner. An empty label draws nothing.
func DrawLabel(dst *image.RGBA, x, y int, label string, opts MarkerOptions) {
	if label == "" {
		return
	}
	face := opts.face()
	d := &font.Drawer{Face: face}
	width := d.MeasureString(label).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	box := image.Rect(x-2, y-2, x+width+2, y+ascent+descent+2)
	draw.Draw(dst, box, &image.Uniform{opts.LabelBack}, image.Point{}, draw.Over)

	d.Dst = dst
	d.Src = image.NewUniform(opts.LabelText)
	d.Dot = fixed.P(x, y+ascent)
	d.DrawString(label)
}

// LabelBounds reports the box DrawLabel would fill, for hit testing and
// layout in the interactive panel.
func LabelBounds(x, y int, label string, opts MarkerOptions) image.Rectangle {
	face := opts.face()
	d := &font.Drawer{Face: face}
	width := d.MeasureString(label).Ceil()
	metrics := face.Metrics()
	return image.Rect(x-2, y-2, x+width+2, y+metrics.Ascent.Ceil()+metrics.Descent.Ceil()+2)
}

func drawFilledCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(img.Bounds()) {
					img.Set(px, py, col)
				}
			}
		}
	}
}

func drawCircleOutline(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}
