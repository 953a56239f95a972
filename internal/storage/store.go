package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/collide/internal/vec"
	"github.com/san-kum/collide/internal/world"
)

// Store keeps one directory per headless run: metadata.json, frames.csv with
// the per-frame aggregates and, for traced runs, bodies.csv.
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
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Bodies     int                `json:"bodies"`
	Width      float64            `json:"arena_width"`
	Height     float64            `json:"arena_height"`
	Radius     float64            `json:"radius"`
	ActivateAt int                `json:"activate_at"`
	Highlight  string             `json:"highlight"`
	NormalAxis string             `json:"normal_axis"`
	Collisions int                `json:"collisions"`
	Degenerate int                `json:"degenerate"`
	Metrics    map[string]float64 `json:"metrics"`
}

// FrameColumns are the columns of frames.csv, in order.
var FrameColumns = []string{
	"frame", "time", "candidates", "collisions", "degenerate",
	"kinetic_energy", "momentum_x", "momentum_y", "highlighted", "activated",
}

var bodyColumns = []string{"frame", "id", "x", "y", "vx", "vy", "activated", "highlighted"}

// Save writes a run under a fresh ID. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, result *world.Result) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixMilli())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Collisions = result.Collisions
	meta.Degenerate = result.Degenerate
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, "frames.csv"), result.Samples); err != nil {
		return "", err
	}
	if len(result.Samples) > 0 && result.Samples[0].Bodies != nil {
		if err := writeBodies(filepath.Join(runDir, "bodies.csv"), result.Samples); err != nil {
			return "", err
		}
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

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func fb(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func writeFrames(path string, samples []world.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(FrameColumns); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Frame),
			ff(s.Time),
			strconv.Itoa(s.Candidates),
			strconv.Itoa(s.Collisions),
			strconv.Itoa(s.Degenerate),
			ff(s.KineticEnergy),
			ff(s.MomentumX),
			ff(s.MomentumY),
			strconv.Itoa(s.Highlighted),
			strconv.Itoa(s.Activated),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeBodies(path string, samples []world.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(bodyColumns); err != nil {
		return err
	}
	for _, s := range samples {
		for _, b := range s.Bodies {
			row := []string{
				strconv.Itoa(s.Frame),
				strconv.Itoa(b.ID),
				ff(b.X), ff(b.Y), ff(b.VX), ff(b.VY),
				fb(b.Activated), fb(b.Highlighted),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
		return runs[i].ID < runs[j].ID
	})
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

// LoadSeries reads one column of frames.csv as floats, in frame order.
func (s *Store) LoadSeries(runID, column string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty frames.csv", runID)
	}

	col := -1
	for i, name := range records[0] {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("run %s: no column %q (have %v)", runID, column, records[0])
	}

	series := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if col >= len(record) {
			continue
		}
		v, err := strconv.ParseFloat(record[col], 64)
		if err != nil {
			continue
		}
		series = append(series, v)
	}
	return series, nil
}

// LoadTraces reads bodies.csv into one path per body ID, in frame order.
// Runs saved without tracing have no bodies.csv and return an error
// wrapping fs.ErrNotExist.
func (s *Store) LoadTraces(runID string) (map[int][]vec.Vec2, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "bodies.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	traces := make(map[int][]vec.Vec2)
	if len(records) == 0 {
		return traces, nil
	}
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		id, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		x, errX := strconv.ParseFloat(record[2], 64)
		y, errY := strconv.ParseFloat(record[3], 64)
		if errX != nil || errY != nil {
			continue
		}
		traces[id] = append(traces[id], vec.New(x, y))
	}
	return traces, nil
}
