package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
)

func TestNormalizeExactBounds(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, -5,
		2, 0,
		3, 5,
	})

	out := Normalize(m)

	assert.Equal(t, 0.0, out.At(0, 0))
	assert.Equal(t, 0.5, out.At(1, 0))
	assert.Equal(t, 1.0, out.At(2, 0))
	assert.Equal(t, 0.0, out.At(0, 1))
	assert.Equal(t, 1.0, out.At(2, 1))
}

func TestNormalizeDegenerateAxis(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		7, 1,
		7, 2,
		7, 3,
	})

	out := Normalize(m)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.5, out.At(i, 0), "constant axis maps every point to 0.5")
	}
	assert.Equal(t, 0.0, out.At(0, 1))
	assert.Equal(t, 1.0, out.At(2, 1))
}

func TestPointsParallelOrder(t *testing.T) {
	coords := mat.NewDense(2, 2, []float64{
		0.1, 0.2,
		0.9, 0.8,
	})

	points, err := Points([]string{"A", "B"}, coords)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, domain.Point{ID: "A", X: 0.1, Y: 0.2}, points[0])
	assert.Equal(t, domain.Point{ID: "B", X: 0.9, Y: 0.8}, points[1])
}

func TestPointsLengthMismatch(t *testing.T) {
	coords := mat.NewDense(2, 2, nil)

	_, err := Points([]string{"A"}, coords)
	assert.Error(t, err)
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "points.json")
	points := []domain.Point{
		{ID: "A", X: 0, Y: 1},
		{ID: "B", X: 0.25, Y: 0.5},
		{ID: "C", X: 1, Y: 0},
	}

	require.NoError(t, Write(path, points))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var artifact Artifact
	require.NoError(t, json.Unmarshal(data, &artifact))

	require.Len(t, artifact.X, 3)
	require.Len(t, artifact.Y, 3)
	require.Len(t, artifact.Names, 3)
	for i, p := range points {
		assert.Equal(t, p.X, artifact.X[i])
		assert.Equal(t, p.Y, artifact.Y[i])
		assert.Equal(t, p.ID, artifact.Names[i])
	}
}
