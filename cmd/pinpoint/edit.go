package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/pinpoint/internal/annotate"
)

// undoCmd removes the most recent annotation from a CSV.
type undoCmd struct {
	csv string
	*root
	fs *flag.FlagSet
}

func (u *undoCmd) FlagSet() *flag.FlagSet {
	return u.fs
}

func parseUndoCmd(args []string, r *root) (*undoCmd, error) {
	fs := flag.NewFlagSet("undo", flag.ExitOnError)
	u := &undoCmd{root: r, fs: fs}
	fs.Usage = usageFunc(u)
	fs.StringVar(&u.csv, "csv", "annotations.csv", "CSV file to remove the last annotation from")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: u}
	}
	return u, nil
}

func (u *undoCmd) Run() error {
	annotations, err := annotate.LoadCSV(u.csv)
	if err != nil {
		return err
	}
	if len(annotations) == 0 {
		fmt.Fprintf(os.Stderr, "nothing to undo in %s\n", u.csv)
		return nil
	}
	removed := annotations[len(annotations)-1]
	store := annotate.NewStore()
	for _, a := range annotations {
		store.Append(a)
	}
	store.RemoveLast()
	if err := annotate.SaveCSV(u.csv, store.Annotations()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "removed (%g, %g) %q from %s (%d left)\n",
		removed.X, removed.Y, removed.Label, u.csv, store.Len())
	return nil
}

// clearCmd removes every annotation from a CSV.
type clearCmd struct {
	csv string
	*root
	fs *flag.FlagSet
}

func (c *clearCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseClearCmd(args []string, r *root) (*clearCmd, error) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	c := &clearCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.csv, "csv", "annotations.csv", "CSV file to clear")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *clearCmd) Run() error {
	annotations, err := annotate.LoadCSV(c.csv)
	if err != nil {
		return err
	}
	if err := annotate.SaveCSV(c.csv, nil); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "cleared %d annotations from %s\n", len(annotations), c.csv)
	return nil
}
