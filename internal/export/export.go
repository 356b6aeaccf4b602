package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
)

// Artifact is the serialized map consumed by the external renderer: three
// parallel arrays with a 1:1 index correspondence in fixed document order.
type Artifact struct {
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Names []string  `json:"names"`
}

// Normalize rescales each column of m independently to [0, 1] using
// (v − min) / (max − min). A constant column maps every value to 0.5 instead
// of dividing by zero.
func Normalize(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, m)
		lo, hi := col[0], col[0]
		for _, v := range col {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		span := hi - lo
		for i, v := range col {
			if span == 0 {
				out.Set(i, j, 0.5)
			} else {
				out.Set(i, j, (v-lo)/span)
			}
		}
	}
	return out
}

// Points pairs the normalized coordinate rows with their document ids.
func Points(ids []string, coords *mat.Dense) ([]domain.Point, error) {
	rows, cols := coords.Dims()
	if rows != len(ids) {
		return nil, fmt.Errorf("coordinate rows (%d) do not match document ids (%d)", rows, len(ids))
	}
	if cols != 2 {
		return nil, fmt.Errorf("expected 2 coordinate columns, got %d", cols)
	}
	points := make([]domain.Point, rows)
	for i, id := range ids {
		points[i] = domain.Point{ID: id, X: coords.At(i, 0), Y: coords.At(i, 1)}
	}
	return points, nil
}

// Write serializes the points to path, creating parent directories as needed.
func Write(path string, points []domain.Point) error {
	artifact := Artifact{
		X:     make([]float64, len(points)),
		Y:     make([]float64, len(points)),
		Names: make([]string, len(points)),
	}
	for i, p := range points {
		artifact.X[i] = p.X
		artifact.Y[i] = p.Y
		artifact.Names[i] = p.ID
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
