package domain

import (
	"context"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Document is a single article: a unique identifier plus its raw text.
type Document struct {
	ID   string
	Text string
}

// Corpus is an ordered collection of documents. The slice order fixes the row
// order of every matrix produced downstream; no stage may reorder it.
type Corpus []Document

// NewCorpus builds a corpus from an id→text mapping. IDs are sorted so the
// document order (and therefore every matrix row order) is deterministic for a
// given input mapping.
func NewCorpus(texts map[string]string) Corpus {
	ids := make([]string, 0, len(texts))
	for id := range texts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	c := make(Corpus, 0, len(ids))
	for _, id := range ids {
		c = append(c, Document{ID: id, Text: texts[id]})
	}
	return c
}

// IDs returns the document identifiers in corpus order.
func (c Corpus) IDs() []string {
	ids := make([]string, len(c))
	for i, d := range c {
		ids[i] = d.ID
	}
	return ids
}

// Vocabulary is the set of index terms observed across the corpus with a
// stable column assignment. Terms[i] is the term at column i and
// Index[Terms[i]] == i.
type Vocabulary struct {
	Terms []string
	Index map[string]int
}

// Point is one document placed on the 2D similarity map. Coordinates are
// normalized to [0, 1] per axis.
type Point struct {
	ID string
	X  float64
	Y  float64
}

// Loader supplies the raw corpus as an id→text mapping. Per-document fetch
// failures are logged and skipped, never fatal.
type Loader interface {
	LoadCorpus(ctx context.Context, seed string, limit int) (map[string]string, error)
}

// Tokenizer turns raw text into a normalized term sequence.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Vectorizer converts a corpus into a vocabulary and a sparse document-term
// weight matrix (rows follow corpus order).
type Vectorizer interface {
	Fit(corpus Corpus) (Vocabulary, *sparse.CSR, error)
}

// Reducer projects the weight matrix onto fewer dense dimensions.
type Reducer interface {
	Reduce(m mat.Matrix) (*mat.Dense, error)
}

// Embedder maps row vectors to a 2-column coordinate matrix. Validate reports
// configuration errors for a given document count before any heavy work runs.
type Embedder interface {
	Validate(documents int) error
	Embed(m mat.Matrix) (*mat.Dense, error)
}
