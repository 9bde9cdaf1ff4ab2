package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/engine"
)

// ExportData is the flat JSON form of a stored run.
type ExportData struct {
	Meta    RunMetadata    `json:"meta"`
	Times   []float64      `json:"times"`
	Species [][]float64    `json:"populations"`
	Events  []engine.Event `json:"hurricanes"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, history []eco.Sample, events []engine.Event) error {
	data := ExportData{
		Meta:    meta,
		Times:   make([]float64, len(history)),
		Species: make([][]float64, len(history)),
		Events:  events,
	}
	for i, s := range history {
		data.Times[i] = s.T
		data.Species[i] = s.N
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes the trajectory as CSV, one row per sample.
func ExportCSV(w io.Writer, history []eco.Sample) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(history) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range history[0].N {
		header = append(header, "n"+strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range history {
		row := make([]string, 0, len(s.N)+1)
		row = append(row, strconv.FormatFloat(s.T, 'f', 6, 64))
		for _, v := range s.N {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
