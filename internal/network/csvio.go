package network

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadMatrix parses a headerless rectangular CSV matrix of
// non-negative reals, one row per plant, one column per animal.
// Malformed input is reported as a *FormatError naming the cause.
func ReadMatrix(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var out [][]float64
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				return nil, &FormatError{Line: line, Cause: "ragged row (column count differs from first row)"}
			}
			return nil, &FormatError{Line: line, Cause: err.Error()}
		}

		row := make([]float64, len(record))
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &FormatError{Line: line, Cause: fmt.Sprintf("non-numeric cell %q in column %d", cell, i+1)}
			}
			if v < 0 {
				return nil, &FormatError{Line: line, Cause: fmt.Sprintf("negative weight %g in column %d", v, i+1)}
			}
			row[i] = v
		}
		out = append(out, row)
	}

	if len(out) == 0 {
		return nil, &FormatError{Cause: "empty matrix file"}
	}
	return out, nil
}

// LoadMatrix reads a biadjacency matrix from a CSV file on disk.
func LoadMatrix(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network matrix: %w", err)
	}
	defer f.Close()

	m, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
