package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/appstate"
	"github.com/example/pinpoint/internal/clipboard"
	"github.com/example/pinpoint/internal/imageio"
	"github.com/example/pinpoint/internal/render"
	"github.com/example/pinpoint/internal/theme"
)

// renderCmd draws annotations from a CSV onto an image without a window.
type renderCmd struct {
	file          string
	csv           string
	output        string
	displayWidth  int
	pointSize     int
	colorSpec     string
	labelSize     float64
	stdout        bool
	toClipboard   bool
	fromClipboard bool
	shadow        bool
	shadowRadius  int
	shadowOffset  string
	shadowPoint   image.Point
	shadowOpacity float64
	*root
	fs *flag.FlagSet
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	defaults := render.DefaultShadowOptions()
	defaultSize := annotate.DefaultPointSize
	if r != nil && r.config != nil {
		defaultSize = r.config.PointSize
	}
	fs.StringVar(&c.file, "file", "", "image file to render annotations onto")
	fs.StringVar(&c.csv, "csv", "annotations.csv", "CSV file with the annotations to draw")
	fs.StringVar(&c.output, "output", "annotated.png", "write the annotated image to this file path")
	fs.IntVar(&c.displayWidth, "display-width", 0, "resize the output to this width (0 keeps the original size)")
	fs.IntVar(&c.pointSize, "point-size", defaultSize, "marker radius in pixels, relative to the display width")
	fs.StringVar(&c.colorSpec, "color", "", "marker color name or hex value (overrides the theme)")
	fs.Float64Var(&c.labelSize, "label-size", appstate.DefaultLabelSize(), "label text size in points")
	fs.BoolVar(&c.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the annotated image to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the annotated image to the clipboard (alias)")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "read the source image from the clipboard instead of a file")
	fs.BoolVar(&c.shadow, "shadow", false, "apply a drop shadow to the annotated image")
	fs.IntVar(&c.shadowRadius, "shadow-radius", defaults.Radius, "drop shadow blur radius in pixels")
	fs.StringVar(&c.shadowOffset, "shadow-offset", formatShadowOffset(defaults.Offset), "drop shadow offset as dx,dy")
	fs.Float64Var(&c.shadowOpacity, "shadow-opacity", defaults.Opacity, "drop shadow opacity between 0 and 1")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && !c.fromClipboard {
		return nil, &UsageError{of: c}
	}
	if c.file != "" && c.fromClipboard {
		return nil, fmt.Errorf("-file cannot be used with -from-clipboard")
	}
	if c.toClipboard && c.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	if c.displayWidth != 0 {
		c.displayWidth = annotate.ClampDisplayWidth(c.displayWidth)
	}
	c.pointSize = annotate.ClampPointSize(c.pointSize)
	pt, err := parseShadowOffset(c.shadowOffset)
	if err != nil {
		return nil, err
	}
	c.shadowPoint = pt
	return c, nil
}

func (c *renderCmd) Run() error {
	var src *image.RGBA
	if c.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return fmt.Errorf("read image from clipboard: %w", err)
		}
		src = imageio.ToRGBA(img)
	} else {
		var err error
		src, err = imageio.Load(c.file)
		if err != nil {
			return err
		}
	}
	annotations, err := annotate.LoadCSV(c.csv)
	if err != nil {
		return err
	}

	b := src.Bounds()
	width := c.displayWidth
	if width == 0 {
		width = b.Dx()
	}
	m := annotate.NewMapper(b.Dx(), b.Dy(), width)

	var activeTheme *theme.Theme
	if c.root != nil {
		activeTheme = c.root.activeTheme
	}
	opts := appstate.MarkerOptionsFor(activeTheme, c.scaledPointSize(b.Dx()))
	if c.colorSpec != "" {
		fill, err := parseColor(c.colorSpec)
		if err != nil {
			return err
		}
		opts.Fill = fill
	}
	if face, err := appstate.FaceForSize(c.labelSize); err == nil {
		opts.Face = face
	}

	img := render.Annotated(src, annotations, m, opts)
	if c.shadow {
		img, _ = render.ApplyShadow(img, c.shadowOptions())
	}

	if c.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := "annotated image"
		if c.file != "" {
			detail = filepath.Base(c.file)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if c.root != nil {
			c.root.notifyCopy(detail)
		}
		return nil
	}
	var w io.Writer
	if c.stdout {
		w = os.Stdout
	} else {
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("create output %q: %w", c.output, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Printf("close %s: %v", c.output, cerr)
			}
		}()
		w = f
	}
	if err := png.Encode(w, img); err != nil {
		if c.stdout {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		return fmt.Errorf("write PNG to %q: %w", c.output, err)
	}
	if c.stdout {
		fmt.Fprintln(os.Stderr, "wrote PNG data to stdout")
		return nil
	}
	saved := c.output
	if abs, err := filepath.Abs(c.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if c.root != nil {
		c.root.notifySave(saved, img)
	}
	return nil
}

// scaledPointSize keeps the marker radius proportional when rendering at the
// original resolution instead of the display width. The radius flag is sized
// for an interactive session, so scale it by the same factor that session
// would use.
func (c *renderCmd) scaledPointSize(origWidth int) int {
	if c.displayWidth != 0 {
		return c.pointSize
	}
	ref := annotate.DefaultDisplayWidth
	if c.root != nil && c.root.config != nil {
		ref = annotate.ClampDisplayWidth(c.root.config.DisplayWidth)
	}
	scale := float64(origWidth) / float64(ref)
	if scale < 1 {
		scale = 1
	}
	return int(float64(c.pointSize)*scale + 0.5)
}

func (c *renderCmd) shadowOptions() render.ShadowOptions {
	opts := render.DefaultShadowOptions()
	if c.shadowRadius >= 0 {
		opts.Radius = c.shadowRadius
	} else {
		opts.Radius = 0
	}
	opts.Offset = c.shadowPoint
	if c.shadowOpacity <= 0 {
		opts.Opacity = 0
	} else if c.shadowOpacity >= 1 {
		opts.Opacity = 1
	} else {
		opts.Opacity = c.shadowOpacity
	}
	return opts
}

func parseShadowOffset(val string) (image.Point, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("invalid shadow offset %q", val)
	}
	vals := make([]int, 2)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Point{}, fmt.Errorf("invalid shadow offset %q", val)
		}
		vals[i] = v
	}
	return image.Pt(vals[0], vals[1]), nil
}

func formatShadowOffset(pt image.Point) string {
	return fmt.Sprintf("%d,%d", pt.X, pt.Y)
}
