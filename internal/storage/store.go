// Package storage persists simulation runs under a data directory, one
// directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Samples   int                `json:"samples"`
	Strength  float64            `json:"strength"`
	Damper    float64            `json:"damper"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json, frames.csv (time, spring, active, deflection)
// and path.csv (the last active rope path) into a new run directory and
// returns the run id.
func (s *Store) Save(scenario string, dt, duration float64, samples int, strength, damper float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Samples:   samples,
		Strength:  strength,
		Damper:    damper,
		Metrics:   result.Metrics,
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

	if err := s.writeFrames(runDir, result); err != nil {
		return "", err
	}
	if err := s.writePath(runDir, result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeFrames(runDir string, result *sim.Result) error {
	file, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "spring", "active", "deflection"}); err != nil {
		return err
	}

	for _, f := range result.Frames {
		active := "0"
		if f.Active {
			active = "1"
		}
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.Spring, 'f', 6, 64),
			active,
			strconv.FormatFloat(rope.Deflection(f.Points), 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) writePath(runDir string, result *sim.Result) error {
	frame, ok := result.LastActive()
	if !ok {
		return nil // rope never attached; no path to store
	}

	file, err := os.Create(filepath.Join(runDir, "path.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"i", "x", "y", "z"}); err != nil {
		return err
	}
	for i, p := range frame.Points {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X(), 'f', 6, 64),
			strconv.FormatFloat(p.Y(), 'f', 6, 64),
			strconv.FormatFloat(p.Z(), 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
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

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Time       float64
	Spring     float64
	Active     bool
	Deflection float64
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]FrameRecord, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 4 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		spring, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		deflection, _ := strconv.ParseFloat(rec[3], 64)
		frames = append(frames, FrameRecord{
			Time:       t,
			Spring:     spring,
			Active:     rec[2] == "1",
			Deflection: deflection,
		})
	}

	return frames, nil
}

func (s *Store) LoadPath(runID string) ([]mgl64.Vec3, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "path.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	points := make([]mgl64.Vec3, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 4 {
			continue
		}
		x, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		y, _ := strconv.ParseFloat(rec[2], 64)
		z, _ := strconv.ParseFloat(rec[3], 64)
		points = append(points, mgl64.Vec3{x, y, z})
	}

	return points, nil
}
