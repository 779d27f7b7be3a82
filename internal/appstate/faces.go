package appstate

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

var extraFaces sync.Map // map[float64]font.Face

var builtinFaceSizes = []float64{12, 14, 32}

// DefaultLabelSize returns the point size used for marker labels.
func DefaultLabelSize() float64 { return 14 }

// FaceForSize returns a font face at the given point size. Faces are cached
// so repeated renders at the same size reuse them.
func FaceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultLabelSize()
	}
	for _, s := range builtinFaceSizes {
		if math.Abs(s-size) < 0.01 {
			switch s {
			case 12:
				return panelFace, nil
			case 14:
				return labelFace, nil
			case 32:
				return messageFace, nil
			}
		}
	}
	if goregularFont == nil {
		return nil, fmt.Errorf("label font not initialised")
	}
	if face, ok := extraFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(goregularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	extraFaces.Store(size, face)
	return face, nil
}

// MeasureLabel returns the dimensions of text rendered at the provided size.
// The returned baseline is the offset from the top to the text baseline.
func MeasureLabel(text string, size float64) (width, height, baseline int, err error) {
	face, err := FaceForSize(size)
	if err != nil {
		return 0, 0, 0, err
	}
	drawer := &font.Drawer{Face: face}
	width = drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	baseline = ascent
	height = ascent + descent
	return
}
