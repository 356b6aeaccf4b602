package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
)

// clusteredData builds two well-separated groups of row vectors.
func clusteredData(rows, dims int) *mat.Dense {
	m := mat.NewDense(rows, dims, nil)
	for i := 0; i < rows; i++ {
		offset := 0.0
		if i >= rows/2 {
			offset = 10.0
		}
		for j := 0; j < dims; j++ {
			m.Set(i, j, offset+0.1*float64((i*dims+j)%7))
		}
	}
	return m
}

func TestValidatePerplexityRange(t *testing.T) {
	emb := New(0.5, 100, 50, 0, 1)
	assert.ErrorIs(t, emb.Validate(10), domain.ErrInvalidPerplexity)

	emb = New(10, 100, 50, 0, 1)
	assert.ErrorIs(t, emb.Validate(10), domain.ErrInvalidPerplexity, "perplexity must be strictly below the document count")

	emb = New(5, 100, 50, 0, 1)
	assert.NoError(t, emb.Validate(10))
}

func TestEmbedShape(t *testing.T) {
	emb := New(2, 100, 50, 0, 42)

	coords, err := emb.Embed(clusteredData(8, 4))
	require.NoError(t, err)

	rows, cols := coords.Dims()
	assert.Equal(t, 8, rows)
	assert.Equal(t, 2, cols)
}

func TestEmbedReproducibleWithSeed(t *testing.T) {
	data := clusteredData(8, 4)

	first, err := New(2, 100, 60, 0, 42).Embed(data)
	require.NoError(t, err)
	second, err := New(2, 100, 60, 0, 42).Embed(data)
	require.NoError(t, err)

	rows, cols := first.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.InDelta(t, first.At(i, j), second.At(i, j), 1e-9)
		}
	}
}

func TestEmbedRejectsInvalidPerplexity(t *testing.T) {
	emb := New(0, 100, 50, 0, 1)

	_, err := emb.Embed(clusteredData(6, 3))
	assert.ErrorIs(t, err, domain.ErrInvalidPerplexity)
}

func TestEmbedWithPatience(t *testing.T) {
	emb := New(2, 100, 500, 20, 7)

	coords, err := emb.Embed(clusteredData(8, 4))
	require.NoError(t, err)

	rows, cols := coords.Dims()
	assert.Equal(t, 8, rows)
	assert.Equal(t, 2, cols)
}
