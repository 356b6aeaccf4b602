package reducer

import (
	"fmt"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
)

// SVD reduces the sparse document-term matrix to a dense lower-dimensional
// representation via truncated singular value decomposition.
type SVD struct {
	components int
}

// New creates a reducer targeting the given component count. Requests above
// the mathematical rank limit are clamped at Reduce time; a non-positive
// count is a configuration error.
func New(components int) (*SVD, error) {
	if components <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidComponents, components)
	}
	return &SVD{components: components}, nil
}

// Reduce projects the documents×terms matrix onto at most
// min(components, documents−1, terms) variance-maximizing directions. Row
// order is preserved.
func (s *SVD) Reduce(m mat.Matrix) (*mat.Dense, error) {
	docs, terms := m.Dims()
	k := s.components
	if limit := docs - 1; k > limit {
		k = limit
	}
	if k > terms {
		k = terms
	}
	if k < 1 {
		k = 1
	}

	// The nlp package follows the term×document convention, so transpose on
	// the way in and back on the way out.
	svd := nlp.NewTruncatedSVD(k)
	reduced, err := svd.FitTransform(transpose(m))
	if err != nil {
		return nil, fmt.Errorf("truncated SVD (%d docs, %d terms, k=%d): %w", docs, terms, k, err)
	}

	kr, kc := reduced.Dims()
	if kc != docs {
		return nil, fmt.Errorf("truncated SVD returned %dx%d, want %d columns", kr, kc, docs)
	}
	out := mat.NewDense(docs, kr, nil)
	for i := 0; i < docs; i++ {
		for c := 0; c < kr; c++ {
			out.Set(i, c, reduced.At(c, i))
		}
	}
	return out, nil
}

func transpose(m mat.Matrix) mat.Matrix {
	rows, cols := m.Dims()
	t := sparse.NewDOK(cols, rows)
	if nz, ok := m.(interface {
		DoNonZero(fn func(i, j int, v float64))
	}); ok {
		nz.DoNonZero(func(i, j int, v float64) {
			t.Set(j, i, v)
		})
		return t.ToCSR()
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); v != 0 {
				t.Set(j, i, v)
			}
		}
	}
	return t.ToCSR()
}
