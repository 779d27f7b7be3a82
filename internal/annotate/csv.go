package annotate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvHeader fixes the export column order.
var csvHeader = []string{"x", "y", "label", "timestamp"}

// WriteCSV serializes annotations in insertion order with the fixed header
// x,y,label,timestamp. Output is UTF-8.
func WriteCSV(w io.Writer, annotations []Annotation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range annotations {
		record := []string{
			strconv.FormatFloat(a.X, 'f', -1, 64),
			strconv.FormatFloat(a.Y, 'f', -1, 64),
			a.Label,
			a.Timestamp,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an export back into annotations, preserving order.
func ReadCSV(r io.Reader) ([]Annotation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty annotation file")
	}
	if err != nil {
		return nil, err
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected header column %q, want %q", header[i], want)
		}
	}
	var out []Annotation
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x %q: %w", record[0], err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y %q: %w", record[1], err)
		}
		out = append(out, Annotation{X: x, Y: y, Label: record[2], Timestamp: record[3]})
	}
	return out, nil
}

// LoadCSV reads an annotation file from disk. A missing file is not an
// error; the headless commands treat it as an empty session.
func LoadCSV(path string) ([]Annotation, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// SaveCSV writes an annotation file to disk.
func SaveCSV(path string, annotations []Annotation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, annotations); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
