package annotate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCSVRoundTrip(t *testing.T) {
	in := []Annotation{
		{X: 200, Y: 150, Label: "left eye", Timestamp: "2025-03-14 09:26:53"},
		{X: 512.5, Y: 0, Label: "edge, with comma", Timestamp: "2025-03-14 09:27:01"},
		{X: 0.25, Y: 600, Label: "corner", Timestamp: "2025-03-14 09:27:19"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, in); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	out, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "x,y,label,timestamp" {
		t.Fatalf("header = %q", got)
	}
}

func TestReadCSVRejectsWrongHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b,c,d\n1,2,x,t\n"))
	if err == nil || !strings.Contains(err.Error(), "unexpected header") {
		t.Fatalf("expected header error, got %v", err)
	}
}

func TestReadCSVRejectsBadCoordinates(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("x,y,label,timestamp\nten,2,pt,now\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid x") {
		t.Fatalf("expected coordinate error, got %v", err)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	anns, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if anns != nil {
		t.Fatalf("expected nil annotations, got %v", anns)
	}
}

func TestSaveLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.csv")
	in := []Annotation{{X: 5, Y: 6, Label: "pin", Timestamp: "2025-03-14 09:26:53"}}
	if err := SaveCSV(path, in); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export missing: %v", err)
	}
	out, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
