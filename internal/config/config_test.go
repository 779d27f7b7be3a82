package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
export_dir = /tmp/annotations
display_width = 1200
point_size = 20
marker_color = #00FF00

[notify]
export = true
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}

	if cfg.ExportDir != "/tmp/annotations" {
		t.Errorf("Expected export_dir '/tmp/annotations', got '%s'", cfg.ExportDir)
	}

	if cfg.DisplayWidth != 1200 {
		t.Errorf("Expected display_width 1200, got %d", cfg.DisplayWidth)
	}
	if cfg.PointSize != 20 {
		t.Errorf("Expected point_size 20, got %d", cfg.PointSize)
	}
	if cfg.MarkerColor != "#00FF00" {
		t.Errorf("Expected marker_color '#00FF00', got '%s'", cfg.MarkerColor)
	}

	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseClampsRanges(t *testing.T) {
	input := `display_width = 9999
point_size = 1
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.DisplayWidth != 1600 {
		t.Errorf("Expected display_width clamped to 1600, got %d", cfg.DisplayWidth)
	}
	if cfg.PointSize != 5 {
		t.Errorf("Expected point_size clamped to 5, got %d", cfg.PointSize)
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
export_dir = /home/user/annotations
display_width = 640
point_size = 12

[notify]
export = true
save = true
copy = false

[theme.custom]
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.ExportDir != cfg2.ExportDir {
		t.Errorf("ExportDir mismatch: %q vs %q", cfg.ExportDir, cfg2.ExportDir)
	}
	if cfg.DisplayWidth != cfg2.DisplayWidth {
		t.Errorf("DisplayWidth mismatch: %d vs %d", cfg.DisplayWidth, cfg2.DisplayWidth)
	}
	if cfg.PointSize != cfg2.PointSize {
		t.Errorf("PointSize mismatch: %d vs %d", cfg.PointSize, cfg2.PointSize)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
}
