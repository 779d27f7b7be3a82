package appstate

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/imageio"
	"github.com/example/pinpoint/internal/theme"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func TestMarkerOptionsForTheme(t *testing.T) {
	th := theme.Default()
	th.MarkerFill = color.RGBA{1, 2, 3, 255}
	th.LabelBackground = color.RGBA{4, 5, 6, 255}

	opts := MarkerOptionsFor(th, 9)
	if opts.Radius != 9 {
		t.Errorf("Radius = %d, want 9", opts.Radius)
	}
	if opts.Fill != th.MarkerFill {
		t.Errorf("Fill = %v, want %v", opts.Fill, th.MarkerFill)
	}
	if opts.LabelBack != th.LabelBackground {
		t.Errorf("LabelBack = %v, want %v", opts.LabelBack, th.LabelBackground)
	}
}

func TestMarkerOptionsForNilTheme(t *testing.T) {
	opts := MarkerOptionsFor(nil, 7)
	if opts.Radius != 7 {
		t.Errorf("Radius = %d, want 7", opts.Radius)
	}
	if opts.Fill != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Fill = %v, want red default", opts.Fill)
	}
}

func TestFaceForSizeCaches(t *testing.T) {
	f1, err := FaceForSize(21)
	if err != nil {
		t.Fatalf("FaceForSize: %v", err)
	}
	f2, err := FaceForSize(21)
	if err != nil {
		t.Fatalf("FaceForSize: %v", err)
	}
	if f1 != f2 {
		t.Error("expected cached face to be reused")
	}
}

func TestMeasureLabel(t *testing.T) {
	w, h, baseline, err := MeasureLabel("door", 14)
	if err != nil {
		t.Fatalf("MeasureLabel: %v", err)
	}
	if w <= 0 || h <= 0 {
		t.Errorf("unexpected size %dx%d", w, h)
	}
	if baseline <= 0 || baseline > h {
		t.Errorf("baseline %d outside text height %d", baseline, h)
	}
}

func TestNewClampsSettings(t *testing.T) {
	a := New(
		WithImage(testImage(10, 10)),
		WithDisplayWidth(50),
		WithPointSize(100),
	)
	if a.DisplayWidth != annotate.MinDisplayWidth {
		t.Errorf("DisplayWidth = %d, want %d", a.DisplayWidth, annotate.MinDisplayWidth)
	}
	if a.PointSize != annotate.MaxPointSize {
		t.Errorf("PointSize = %d, want %d", a.PointSize, annotate.MaxPointSize)
	}
	if a.Store == nil {
		t.Error("expected a default store")
	}
}

func TestApplySettingsNotifiesListener(t *testing.T) {
	var gotW, gotP int
	a := New(
		WithImage(testImage(10, 10)),
		WithSettingsListener(func(w, p int) { gotW, gotP = w, p }),
	)
	a.ApplySettings(1000, 20)
	if gotW != 1000 || gotP != 20 {
		t.Errorf("listener got (%d, %d), want (1000, 20)", gotW, gotP)
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")
	st := annotate.NewStore()
	st.Add(10, 20, "window")
	a := New(WithImage(testImage(10, 10)), WithStore(st), WithExportPath(path))

	got, err := a.exportCSV()
	if err != nil {
		t.Fatalf("exportCSV: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	anns, err := annotate.LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(anns) != 1 || anns[0].Label != "window" {
		t.Errorf("unexpected annotations %+v", anns)
	}
}

func TestSaveAnnotatedWritesFullResolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	st := annotate.NewStore()
	st.Add(100, 75, "roof")
	a := New(WithImage(testImage(200, 150)), WithStore(st), WithOutput(path))

	m := annotate.NewMapper(200, 150, annotate.MinDisplayWidth)
	gotPath, out, err := a.saveAnnotated(m, 10)
	if err != nil {
		t.Fatalf("saveAnnotated: %v", err)
	}
	if gotPath != path {
		t.Errorf("path = %q, want %q", gotPath, path)
	}
	if got := out.Bounds(); got.Dx() != 200 || got.Dy() != 150 {
		t.Errorf("output bounds %v, want original 200x150", got)
	}
	saved, err := imageio.Load(path)
	if err != nil {
		t.Fatalf("Load saved image: %v", err)
	}
	if saved.Bounds().Dx() != 200 {
		t.Errorf("saved width %d, want 200", saved.Bounds().Dx())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat saved file: %v", err)
	}
}

func TestConfirmGateNeedsSecondTrigger(t *testing.T) {
	var g confirmGate
	if g.Arm() {
		t.Fatal("first trigger should only arm the gate")
	}
	if !g.Arm() {
		t.Fatal("second consecutive trigger should fire")
	}
	if g.Arm() {
		t.Fatal("gate should disarm after firing")
	}
}

func TestConfirmGateResetCancelsPending(t *testing.T) {
	var g confirmGate
	if g.Arm() {
		t.Fatal("first trigger should only arm the gate")
	}
	g.Reset()
	if g.Arm() {
		t.Fatal("trigger after an unrelated action should re-arm, not fire")
	}
}

func TestShortcutBarHasDecreaseButtons(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 900, 400))
	triggered := map[string]int{}
	drawShortcuts(dst, 900, 400, false, 15, 800, theme.Default(), func(action string) {
		triggered[action]++
	})
	for _, sc := range shortcutRects {
		sc.Activate()
	}
	for _, action := range []string{"undo", "clear", "export", "save", "copy",
		"sizedown", "sizeup", "widthdown", "widthup", "quit"} {
		if triggered[action] != 1 {
			t.Errorf("action %q triggered %d times, want 1", action, triggered[action])
		}
	}
}

func TestDrawCheckerboardAlternates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	light := color.RGBA{220, 220, 220, 255}
	dark := color.RGBA{192, 192, 192, 255}
	drawCheckerboard(img, img.Bounds(), 8, light, dark)

	if img.RGBAAt(0, 0) != light {
		t.Errorf("corner = %v, want light", img.RGBAAt(0, 0))
	}
	if img.RGBAAt(8, 0) != dark {
		t.Errorf("second square = %v, want dark", img.RGBAAt(8, 0))
	}
	if img.RGBAAt(8, 8) != light {
		t.Errorf("diagonal square = %v, want light", img.RGBAAt(8, 8))
	}
}
