package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/imageio"
)

// markCmd appends a single labelled point to a CSV without opening a window.
// It is the fallback entry path when no display is available.
type markCmd struct {
	file  string
	csv   string
	x     float64
	y     float64
	label string
	*root
	fs *flag.FlagSet
}

func (m *markCmd) FlagSet() *flag.FlagSet {
	return m.fs
}

func parseMarkCmd(args []string, r *root) (*markCmd, error) {
	fs := flag.NewFlagSet("mark", flag.ExitOnError)
	m := &markCmd{root: r, fs: fs}
	fs.Usage = usageFunc(m)
	fs.StringVar(&m.file, "file", "", "image file the coordinates refer to")
	fs.StringVar(&m.csv, "csv", "annotations.csv", "CSV file to append the annotation to")
	fs.Float64Var(&m.x, "x", -1, "x coordinate in original image pixels")
	fs.Float64Var(&m.y, "y", -1, "y coordinate in original image pixels")
	fs.StringVar(&m.label, "label", "", "label for the point")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if m.file == "" {
		return nil, &UsageError{of: m}
	}
	if strings.TrimSpace(m.label) == "" {
		return nil, fmt.Errorf("label cannot be empty")
	}
	if m.x < 0 || m.y < 0 {
		return nil, fmt.Errorf("x and y must be non-negative")
	}
	return m, nil
}

func (m *markCmd) Run() error {
	img, err := imageio.Load(m.file)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if m.x > float64(b.Dx()) || m.y > float64(b.Dy()) {
		return fmt.Errorf("point (%g, %g) is outside the %dx%d image", m.x, m.y, b.Dx(), b.Dy())
	}

	annotations, err := annotate.LoadCSV(m.csv)
	if err != nil {
		return err
	}
	store := annotate.NewStore()
	for _, a := range annotations {
		store.Append(a)
	}
	store.Add(m.x, m.y, m.label)

	if err := annotate.SaveCSV(m.csv, store.Annotations()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "marked (%g, %g) %q in %s (%d total)\n", m.x, m.y, m.label, m.csv, store.Len())
	if m.root != nil {
		m.root.notifyExport(m.csv)
	}
	return nil
}
