// Package storage persists completed runs: metadata as JSON, the snapshot
// history as CSV, one directory per run under the data dir.
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

	"github.com/salcedoinaki/fcsim/internal/sim"
)

var csvHeader = []string{
	"time", "voltage", "current", "temperature", "hydration", "oxygen",
	"soc", "battery_voltage", "battery_current", "battery_temp",
	"pressure", "compressor_speed", "mass_flow", "load", "charging", "cooling",
}

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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Load      float64            `json:"load"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a completed run and returns its generated ID.
func (s *Store) Save(dt, load float64, history []sim.Snapshot, metricValues map[string]float64) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Dt:        dt,
		Steps:     len(history),
		Load:      load,
		Metrics:   metricValues,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, snap := range history {
		row := []string{
			f(snap.Time),
			f(snap.FuelCell.Voltage),
			f(snap.FuelCell.Current),
			f(snap.FuelCell.Temperature),
			f(snap.FuelCell.MembraneHydration),
			f(snap.FuelCell.OxygenConcentration),
			f(snap.Battery.SoC),
			f(snap.Battery.Voltage),
			f(snap.Battery.Current),
			f(snap.Battery.Temperature),
			f(snap.Manifold.Pressure),
			f(snap.Compressor.Speed),
			f(snap.Compressor.MassFlow),
			f(snap.Load),
			b(snap.Charging),
			b(snap.CoolingActive),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadSeries reads one named column of a stored run, for plotting.
func (s *Store) LoadSeries(runID, column string) ([]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	col := -1
	for i, name := range records[0] {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, nil, fmt.Errorf("storage: no column %q in run %s", column, runID)
	}

	times := make([]float64, 0, len(records)-1)
	values := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= col {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[col], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		values = append(values, v)
	}
	return times, values, nil
}

func f(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func b(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
