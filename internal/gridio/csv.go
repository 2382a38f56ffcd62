package gridio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/roach88/knots/internal/grid"
)

func decodeCSV(name string, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are a grid error, not a CSV one

	var cells [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Path: name, Message: fmt.Sprintf("malformed csv: %v", err)}
		}
		cells = append(cells, rec)
	}
	return cells, nil
}

// WriteCSV writes d as lowercase CSV, one grid row per line, blank cells
// empty.
func WriteCSV(w io.Writer, d *grid.Diagram) error {
	cw := csv.NewWriter(w)
	n := d.Size()
	rec := make([]string, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			switch d.At(r, c) {
			case grid.X:
				rec[c] = "x"
			case grid.O:
				rec[c] = "o"
			default:
				rec[c] = ""
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes d to path, replacing any existing file.
func SaveCSV(path string, d *grid.Diagram) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create grid file: %w", err)
	}
	if err := WriteCSV(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
