package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	return path
}

func TestParseMarkRejectsEmptyLabel(t *testing.T) {
	_, err := parseMarkCmd([]string{"-file", "in.png", "-x", "10", "-y", "10"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "label cannot be empty"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseMarkRejectsNegativeCoordinates(t *testing.T) {
	_, err := parseMarkCmd([]string{"-file", "in.png", "-x", "-5", "-y", "10", "-label", "a"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "must be non-negative"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestMarkRunRejectsOutOfBounds(t *testing.T) {
	img := writeTestPNG(t, 100, 80)
	csv := filepath.Join(t.TempDir(), "out.csv")
	cmd, err := parseMarkCmd([]string{"-file", img, "-csv", csv, "-x", "500", "-y", "10", "-label", "far"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "outside the 100x80 image"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
	if _, statErr := os.Stat(csv); !os.IsNotExist(statErr) {
		t.Fatalf("expected no CSV written, got %v", statErr)
	}
}

func TestParseRenderStdoutClipboardConflict(t *testing.T) {
	_, err := parseRenderCmd([]string{"-file", "in.png", "-stdout", "-to-clipboard"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-stdout cannot be used with -to-clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseRenderBadShadowOffset(t *testing.T) {
	_, err := parseRenderCmd([]string{"-file", "in.png", "-shadow-offset", "abc"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseAnnotateUnsupportedExtension(t *testing.T) {
	_, err := parseAnnotateCmd([]string{"-file", "notes.txt"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "unsupported image type"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestUndoRunEmptyCSV(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "empty.csv")
	cmd, err := parseUndoCmd([]string{"-csv", csv}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("undo on empty CSV should be a no-op, got %v", err)
	}
	if _, statErr := os.Stat(csv); !os.IsNotExist(statErr) {
		t.Fatalf("expected no CSV written, got %v", statErr)
	}
}

func TestMarkThenUndoRoundTrip(t *testing.T) {
	img := writeTestPNG(t, 100, 80)
	csv := filepath.Join(t.TempDir(), "marks.csv")

	mark, err := parseMarkCmd([]string{"-file", img, "-csv", csv, "-x", "40", "-y", "20", "-label", "corner"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := mark.Run(); err != nil {
		t.Fatalf("mark: %v", err)
	}

	undo, err := parseUndoCmd([]string{"-csv", csv}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := undo.Run(); err != nil {
		t.Fatalf("undo: %v", err)
	}
}
