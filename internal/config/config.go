package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Save   bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	DisplayWidth int
	PointSize    int
	MarkerColor  string
	Theme        string
	ExportDir    string
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		DisplayWidth: annotate.DefaultDisplayWidth,
		PointSize:    annotate.DefaultPointSize,
		Theme:        "", // empty allows fallback to Env/Default
		Themes:       make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "display_width = %d\n", c.DisplayWidth)
	fmt.Fprintf(&sb, "point_size = %d\n", c.PointSize)
	if c.MarkerColor != "" {
		fmt.Fprintf(&sb, "marker_color = %s\n", c.MarkerColor)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort theme names for deterministic output.
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", theme.FormatColor(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", theme.FormatColor(t.Foreground))
		fmt.Fprintf(&sb, "CheckerLight: %s\n", theme.FormatColor(t.CheckerLight))
		fmt.Fprintf(&sb, "CheckerDark: %s\n", theme.FormatColor(t.CheckerDark))
		fmt.Fprintf(&sb, "MarkerFill: %s\n", theme.FormatColor(t.MarkerFill))
		fmt.Fprintf(&sb, "MarkerOutline: %s\n", theme.FormatColor(t.MarkerOutline))
		fmt.Fprintf(&sb, "PendingMarker: %s\n", theme.FormatColor(t.PendingMarker))
		fmt.Fprintf(&sb, "LabelText: %s\n", theme.FormatColor(t.LabelText))
		fmt.Fprintf(&sb, "LabelBackground: %s\n", theme.FormatColor(t.LabelBackground))
		fmt.Fprintf(&sb, "PanelBackground: %s\n", theme.FormatColor(t.PanelBackground))
		fmt.Fprintf(&sb, "PanelText: %s\n", theme.FormatColor(t.PanelText))
		fmt.Fprintf(&sb, "PanelHighlight: %s\n", theme.FormatColor(t.PanelHighlight))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", theme.FormatColor(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", theme.FormatColor(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", theme.FormatColor(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonText: %s\n", theme.FormatColor(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", theme.FormatColor(t.ButtonBorder))
		fmt.Fprintf(&sb, "MessageBackground: %s\n", theme.FormatColor(t.MessageBackground))
		fmt.Fprintf(&sb, "MessageText: %s\n", theme.FormatColor(t.MessageText))
		sb.WriteString("\n")
	}

	return sb.String()
}
