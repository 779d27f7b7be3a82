package theme

import (
	"image/color"
)

// Theme defines the color palette for the annotator UI and its markers.
type Theme struct {
	Name string

	// Canvas
	Background   color.RGBA // backdrop behind the display image
	Foreground   color.RGBA // general text
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Annotation markers
	MarkerFill      color.RGBA
	MarkerOutline   color.RGBA
	PendingMarker   color.RGBA
	LabelText       color.RGBA
	LabelBackground color.RGBA

	// Side panel (annotation table)
	PanelBackground color.RGBA
	PanelText       color.RGBA
	PanelHighlight  color.RGBA

	// Shortcut bar buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Status messages
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the hardcoded light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		MarkerFill:            color.RGBA{255, 0, 0, 255},
		MarkerOutline:         color.RGBA{255, 255, 255, 255},
		PendingMarker:         color.RGBA{255, 165, 0, 255},
		LabelText:             color.RGBA{255, 255, 255, 255},
		LabelBackground:       color.RGBA{0, 0, 0, 255},
		PanelBackground:       color.RGBA{235, 235, 235, 255},
		PanelText:             color.RGBA{0, 0, 0, 255},
		PanelHighlight:        color.RGBA{200, 200, 200, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		MessageBackground:     color.RGBA{255, 255, 255, 230},
		MessageText:           color.RGBA{0, 0, 0, 255},
	}
}
