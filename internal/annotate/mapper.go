package annotate

import "math"

// Display width and point radius bounds exposed to the UI and CLI.
const (
	MinDisplayWidth = 400
	MaxDisplayWidth = 1600
	MinPointSize    = 5
	MaxPointSize    = 30

	DefaultDisplayWidth = 800
	DefaultPointSize    = 15
)

// Mapper converts between display coordinates (the resized image shown to the
// user) and original-image pixel coordinates. The transform is linear and
// invertible up to floating rounding. Results are not clamped; a click
// exactly on the image boundary maps as-is.
type Mapper struct {
	origWidth     int
	origHeight    int
	displayWidth  int
	displayHeight int
}

// NewMapper builds a mapper for an original image of the given size shown at
// displayWidth. Display height follows the aspect ratio.
func NewMapper(origWidth, origHeight, displayWidth int) Mapper {
	h := int(math.Round(float64(displayWidth) * float64(origHeight) / float64(origWidth)))
	if h < 1 {
		h = 1
	}
	return Mapper{
		origWidth:     origWidth,
		origHeight:    origHeight,
		displayWidth:  displayWidth,
		displayHeight: h,
	}
}

// DisplaySize returns the resized image dimensions.
func (m Mapper) DisplaySize() (int, int) {
	return m.displayWidth, m.displayHeight
}

// ScaleX is originalWidth / displayWidth.
func (m Mapper) ScaleX() float64 {
	return float64(m.origWidth) / float64(m.displayWidth)
}

// ScaleY is originalHeight / displayHeight.
func (m Mapper) ScaleY() float64 {
	return float64(m.origHeight) / float64(m.displayHeight)
}

// ToOriginal maps a display-space click to original-image pixels.
func (m Mapper) ToOriginal(dx, dy float64) (float64, float64) {
	return dx * m.ScaleX(), dy * m.ScaleY()
}

// ToDisplay maps original-image pixels to display space for rendering.
func (m Mapper) ToDisplay(x, y float64) (float64, float64) {
	return x / m.ScaleX(), y / m.ScaleY()
}

// ClampDisplayWidth keeps a requested display width inside the supported range.
func ClampDisplayWidth(w int) int {
	if w < MinDisplayWidth {
		return MinDisplayWidth
	}
	if w > MaxDisplayWidth {
		return MaxDisplayWidth
	}
	return w
}

// ClampPointSize keeps a requested marker radius inside the supported range.
func ClampPointSize(r int) int {
	if r < MinPointSize {
		return MinPointSize
	}
	if r > MaxPointSize {
		return MaxPointSize
	}
	return r
}
