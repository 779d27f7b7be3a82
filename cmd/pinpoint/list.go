package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/clipboard"
)

// listCmd prints the annotations in a CSV as a table.
type listCmd struct {
	csv           string
	fromClipboard bool
	*root
	fs *flag.FlagSet
}

func (l *listCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	l := &listCmd{root: r, fs: fs}
	fs.Usage = usageFunc(l)
	fs.StringVar(&l.csv, "csv", "annotations.csv", "CSV file to list")
	fs.BoolVar(&l.fromClipboard, "from-clipboard", false, "read CSV text from the clipboard instead of a file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: l}
	}
	return l, nil
}

func (l *listCmd) Run() error {
	var annotations []annotate.Annotation
	source := l.csv
	if l.fromClipboard {
		source = "clipboard"
		text, err := clipboard.ReadText()
		if err != nil {
			return fmt.Errorf("read CSV from clipboard: %w", err)
		}
		annotations, err = annotate.ReadCSV(strings.NewReader(text))
		if err != nil {
			return fmt.Errorf("parse clipboard CSV: %w", err)
		}
	} else {
		var err error
		annotations, err = annotate.LoadCSV(l.csv)
		if err != nil {
			return err
		}
	}
	if len(annotations) == 0 {
		fmt.Fprintf(os.Stdout, "no annotations in %s\n", source)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tx\ty\tlabel\ttimestamp")
	for i, a := range annotations {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%s\t%s\n", i+1, a.X, a.Y, a.Label, a.Timestamp)
	}
	return w.Flush()
}
