package gridio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/knots/internal/grid"
)

// Extensions understood by Load.
const (
	ExtCSV = ".csv"
	ExtCUE = ".cue"
)

// Load reads the grid file at path, choosing the decoder from its
// extension.
func Load(path string) (*grid.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	return Decode(path, data)
}

// Decode parses data as the format implied by name's extension.
func Decode(name string, data []byte) (*grid.Diagram, error) {
	var (
		cells [][]string
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ExtCSV:
		cells, err = decodeCSV(name, bytes.NewReader(data))
	case ExtCUE:
		cells, err = decodeCUE(name, data)
	default:
		return nil, &FormatError{Path: name, Message: fmt.Sprintf("unsupported grid file extension %q (want %s or %s)", ext, ExtCSV, ExtCUE)}
	}
	if err != nil {
		return nil, err
	}
	return fromCells(name, cells)
}

// fromCells maps cell text to markers. Ragged tables are passed through so
// that grid.New reports them as INVALID_DIMENSIONS.
func fromCells(name string, cells [][]string) (*grid.Diagram, error) {
	rows := make([][]grid.Marker, len(cells))
	for r, line := range cells {
		rows[r] = make([]grid.Marker, len(line))
		for c, text := range line {
			m, ok := grid.ParseMarker(text)
			if !ok {
				return nil, &UnknownMarkerError{Path: name, Row: r, Col: c, Text: text}
			}
			rows[r][c] = m
		}
	}
	return grid.New(rows)
}
