package embedding

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/danaugrs/go-tsne/tsne"
	"gonum.org/v1/gonum/mat"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
)

// TSNE wraps t-distributed stochastic neighbor embedding: documents that are
// close in the high-dimensional weight space stay close in the 2D map; global
// distances carry no meaning.
type TSNE struct {
	Perplexity   float64
	LearningRate float64
	// MaxIterations bounds the gradient descent.
	MaxIterations int
	// Patience stops the descent after this many consecutive iterations
	// without divergence improvement. 0 runs the full iteration budget.
	Patience int
	// Seed makes the random initialization reproducible. The underlying
	// library draws from the global math/rand source, so the seed is applied
	// there immediately before embedding.
	Seed    int64
	Verbose bool
}

// New creates an embedder from the configured stopping and reproducibility
// parameters.
func New(perplexity, learningRate float64, maxIterations, patience int, seed int64) *TSNE {
	if learningRate <= 0 {
		learningRate = 100
	}
	if maxIterations <= 0 {
		maxIterations = 1000
	}
	return &TSNE{
		Perplexity:    perplexity,
		LearningRate:  learningRate,
		MaxIterations: maxIterations,
		Patience:      patience,
		Seed:          seed,
	}
}

// Validate reports whether the configured perplexity is usable for the given
// document count. Perplexity must satisfy 1 <= perplexity < documents.
func (t *TSNE) Validate(documents int) error {
	if t.Perplexity < 1 || t.Perplexity >= float64(documents) {
		return fmt.Errorf("%w: perplexity %g with %d documents", domain.ErrInvalidPerplexity, t.Perplexity, documents)
	}
	return nil
}

// Embed maps the rows of m to 2D coordinates, preserving row order.
func (t *TSNE) Embed(m mat.Matrix) (*mat.Dense, error) {
	docs, dims := m.Dims()
	if err := t.Validate(docs); err != nil {
		return nil, err
	}

	// The library draws its random initialization from the global math/rand
	// source. The randseednop=0 GoDebug setting in go.mod keeps Seed
	// effective on current toolchains.
	rand.Seed(t.Seed)
	embedder := tsne.NewTSNE(2, t.Perplexity, t.LearningRate, t.MaxIterations, t.Verbose)

	best := math.Inf(1)
	stale := 0
	result := embedder.EmbedData(m, func(iter int, divergence float64, embedding mat.Matrix) bool {
		if t.Patience <= 0 {
			return false
		}
		if divergence < best {
			best = divergence
			stale = 0
			return false
		}
		stale++
		return stale >= t.Patience
	})

	rows, cols := result.Dims()
	if rows != docs || cols != 2 {
		return nil, fmt.Errorf("embedding produced %dx%d for %d documents of dimension %d", rows, cols, docs, dims)
	}
	return mat.DenseCopyOf(result), nil
}
