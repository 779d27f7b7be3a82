package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
Name: custom
MarkerFill: #00FF00
LabelBackground: #11223344
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "custom" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.MarkerFill != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("MarkerFill = %+v", th.MarkerFill)
	}
	if th.LabelBackground != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Errorf("LabelBackground = %+v", th.LabelBackground)
	}
	// Missing keys keep defaults.
	if th.MarkerOutline != Default().MarkerOutline {
		t.Errorf("MarkerOutline changed: %+v", th.MarkerOutline)
	}
}

func TestParseUnknownKeyIgnored(t *testing.T) {
	th, err := Parse(strings.NewReader("FutureKnob: #123456\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.MarkerFill != Default().MarkerFill {
		t.Errorf("defaults disturbed: %+v", th.MarkerFill)
	}
}

func TestParseBadColor(t *testing.T) {
	_, err := Parse(strings.NewReader("MarkerFill: red\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid color") {
		t.Fatalf("expected color error, got %v", err)
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	loader := NewLoader()
	for _, name := range []string{"default", "dark", "high_contrast"} {
		th, err := loader.Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if !strings.EqualFold(th.Name, name) {
			t.Errorf("Load(%q) got theme named %q", name, th.Name)
		}
	}
}

func TestLoadMissingTheme(t *testing.T) {
	loader := &Loader{ConfigDir: t.TempDir(), SystemDir: t.TempDir()}
	if _, err := loader.Load("does-not-exist"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {10, 20, 30, 40}} {
		got, err := ParseColor(FormatColor(c))
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", FormatColor(c), err)
		}
		if got != c {
			t.Fatalf("round trip %+v -> %+v", c, got)
		}
	}
}
