// Package storage persists simulation runs as per-run directories:
// metadata.json, populations.csv with the sampled trajectory, and
// hurricanes.csv with the shock log.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Topology      string             `json:"topology"`
	Species       int                `json:"species"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	HurricaneRate float64            `json:"hurricane_rate"`
	Hurricanes    int                `json:"hurricanes"`
	Extinct       []int              `json:"extinct"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes one run to disk and returns its generated ID.
func (s *Store) Save(meta RunMetadata, history []eco.Sample, events []engine.Event) (string, error) {
	runID := fmt.Sprintf("%s_%s", meta.Topology, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Hurricanes = len(events)

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeHistory(filepath.Join(runDir, "populations.csv"), history); err != nil {
		return "", err
	}
	if err := writeEvents(filepath.Join(runDir, "hurricanes.csv"), events); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHistory(path string, history []eco.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(history) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range history[0].N {
		header = append(header, fmt.Sprintf("n%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, sample := range history {
		row := make([]string, 0, len(sample.N)+1)
		row = append(row, strconv.FormatFloat(sample.T, 'f', 6, 64))
		for _, v := range sample.N {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeEvents(path string, events []engine.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "category", "damage"}); err != nil {
		return err
	}
	for _, ev := range events {
		row := []string{
			strconv.FormatFloat(ev.T, 'f', 6, 64),
			ev.Label,
			strconv.FormatFloat(ev.Damage, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHistory reads back the sampled trajectory of a stored run.
func (s *Store) LoadHistory(runID string) ([]eco.Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "populations.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []eco.Sample{}, nil
	}

	history := make([]eco.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		n := make(eco.State, 0, len(record)-1)
		for _, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				break
			}
			n = append(n, v)
		}
		history = append(history, eco.Sample{T: t, N: n})
	}
	return history, nil
}

// LoadEvents reads back the hurricane log of a stored run.
func (s *Store) LoadEvents(runID string) ([]engine.Event, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "hurricanes.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	events := make([]engine.Event, 0)
	for i, record := range records {
		if i == 0 || len(record) != 3 {
			continue
		}
		t, err1 := strconv.ParseFloat(record[0], 64)
		d, err2 := strconv.ParseFloat(record[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		events = append(events, engine.Event{T: t, Label: record[1], Damage: d})
	}
	return events, nil
}
