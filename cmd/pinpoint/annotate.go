package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/appstate"
	"github.com/example/pinpoint/internal/imageio"
)

// annotateCmd opens the interactive annotation window.
type annotateCmd struct {
	file         string
	csv          string
	output       string
	displayWidth int
	pointSize    int
	fresh        bool
	view         bool
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	defaultWidth := annotate.DefaultDisplayWidth
	defaultSize := annotate.DefaultPointSize
	if r != nil && r.config != nil {
		defaultWidth = r.config.DisplayWidth
		defaultSize = r.config.PointSize
	}
	fs.StringVar(&a.file, "file", "", "image file to annotate (jpg, jpeg, or png)")
	fs.StringVar(&a.csv, "csv", "annotations.csv", "CSV file annotations are exported to and resumed from")
	fs.StringVar(&a.output, "output", "annotated.png", "output path for the saved annotated image")
	fs.IntVar(&a.displayWidth, "display-width", defaultWidth, "width of the resized display image in pixels")
	fs.IntVar(&a.pointSize, "point-size", defaultSize, "marker radius in pixels")
	fs.BoolVar(&a.fresh, "fresh", false, "start with an empty session instead of resuming the CSV")
	fs.BoolVar(&a.view, "view", false, "open read-only; press 'a' in the window to start annotating")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if a.file == "" {
		return nil, &UsageError{of: a}
	}
	if !imageio.Supported(a.file) {
		return nil, fmt.Errorf("unsupported image type %q: want jpg, jpeg, or png", a.file)
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	img, err := imageio.Load(a.file)
	if err != nil {
		return err
	}

	store := annotate.NewStore()
	if !a.fresh {
		existing, err := annotate.LoadCSV(a.csv)
		if err != nil {
			return fmt.Errorf("resume %s: %w", a.csv, err)
		}
		for _, ann := range existing {
			store.Append(ann)
		}
	}

	opts := []appstate.Option{
		appstate.WithImage(img),
		appstate.WithStore(store),
		appstate.WithTitle(filepath.Base(a.file)),
		appstate.WithOutput(a.output),
		appstate.WithExportPath(a.csv),
		appstate.WithDisplayWidth(a.displayWidth),
		appstate.WithPointSize(a.pointSize),
	}
	if a.view {
		opts = append(opts, appstate.WithMode(appstate.ModeView))
	}
	if a.root != nil {
		opts = append(opts,
			appstate.WithTheme(a.root.activeTheme),
			appstate.WithNotifier(a.root.notifier),
			// Keep in-window adjustments so a later "config save" persists them.
			appstate.WithSettingsListener(func(w, p int) {
				a.root.config.DisplayWidth = w
				a.root.config.PointSize = p
			}),
		)
	}
	if a.root != nil {
		opts = append(opts, appstate.WithOnClose(func() { a.root.state = nil }))
	}
	st := appstate.New(opts...)
	if a.root != nil {
		a.root.state = st
	}
	st.Run()
	return nil
}
