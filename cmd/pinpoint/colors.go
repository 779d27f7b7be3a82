package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// markerColors is the curated set shown by the colors command. Any name from
// the full SVG 1.1 list or a hex value is still accepted by -color.
var markerColors = []string{
	"red",
	"orange",
	"yellow",
	"lime",
	"green",
	"cyan",
	"blue",
	"navy",
	"purple",
	"magenta",
	"black",
	"gray",
	"silver",
	"white",
}

const defaultMarkerColor = "red"

func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		r, err := strconv.ParseUint(spec[1:3], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		g, err := strconv.ParseUint(spec[3:5], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		b, err := strconv.ParseUint(spec[5:7], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		a := uint64(255)
		if len(spec) == 9 {
			val, err := strconv.ParseUint(spec[7:9], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			a = val
		}
		return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	fmt.Fprintln(os.Stdout, "available marker colors (* marks the default color):")
	for _, name := range markerColors {
		col, ok := colornames.Map[name]
		if !ok {
			continue
		}
		marker := " "
		if name == defaultMarkerColor {
			marker = "*"
		}
		hex := fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
		fmt.Fprintf(os.Stdout, "%s %-12s %s %s\n", marker, name, hex, block)
	}
	fmt.Fprintln(os.Stdout, "any SVG 1.1 color name or #RRGGBB[AA] value is accepted by -color")
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
