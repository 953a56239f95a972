package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/collide/internal/world"
)

type ExportData struct {
	Run     RunMetadata        `json:"run"`
	Columns []string           `json:"columns"`
	Frames  [][]float64        `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes the stored run runID as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Columns: FrameColumns,
		Metrics: meta.Metrics,
	}

	series := make([][]float64, len(FrameColumns))
	for i, col := range FrameColumns {
		if series[i], err = s.LoadSeries(runID, col); err != nil {
			return err
		}
	}
	n := len(series[0])
	data.Frames = make([][]float64, n)
	for row := 0; row < n; row++ {
		data.Frames[row] = make([]float64, len(FrameColumns))
		for col := range FrameColumns {
			if row < len(series[col]) {
				data.Frames[row][col] = series[col][row]
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportResult writes an in-memory result without touching the store.
func ExportResult(w io.Writer, meta RunMetadata, result *world.Result) error {
	meta.Collisions = result.Collisions
	meta.Degenerate = result.Degenerate
	meta.Metrics = result.Metrics

	data := ExportData{
		Run:     meta,
		Columns: FrameColumns,
		Frames:  make([][]float64, len(result.Samples)),
		Metrics: result.Metrics,
	}
	for i, s := range result.Samples {
		data.Frames[i] = []float64{
			float64(s.Frame), s.Time,
			float64(s.Candidates), float64(s.Collisions), float64(s.Degenerate),
			s.KineticEnergy, s.MomentumX, s.MomentumY,
			float64(s.Highlighted), float64(s.Activated),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
