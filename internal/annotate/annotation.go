package annotate

import (
	"fmt"
	"time"
)

// TimestampLayout is the wall-clock format written to exports.
const TimestampLayout = "2006-01-02 15:04:05"

// Annotation is a labeled point in original-image pixel coordinates.
type Annotation struct {
	X         float64
	Y         float64
	Label     string
	Timestamp string
}

// String renders the annotation the way the side panel and list command show it.
func (a Annotation) String() string {
	return fmt.Sprintf("(%.1f, %.1f) %s", a.X, a.Y, a.Label)
}

// Point is a coordinate pair awaiting a label.
type Point struct {
	X float64
	Y float64
}

// now is swapped out by tests that need deterministic timestamps.
var now = time.Now

func timestamp() string {
	return now().Format(TimestampLayout)
}
