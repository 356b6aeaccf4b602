package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/export"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/logger"
)

// Pipeline runs the batch transformation from corpus to normalized 2D points:
// tokenize → weight → (reduce) → embed → normalize. Each stage consumes the
// full output of the previous one; nothing is streamed or shared, so a failed
// run is simply re-run wholesale.
type Pipeline struct {
	vectorizer domain.Vectorizer
	// reducer may be nil, in which case the sparse weight matrix is densified
	// and fed to the embedder directly.
	reducer  domain.Reducer
	embedder domain.Embedder
	logger   *logger.Logger
}

func New(vectorizer domain.Vectorizer, reducer domain.Reducer, embedder domain.Embedder, log *logger.Logger) *Pipeline {
	return &Pipeline{vectorizer: vectorizer, reducer: reducer, embedder: embedder, logger: log}
}

// Run transforms the corpus into one normalized point per document, in corpus
// order. Configuration errors surface before the heavy stages start.
func (p *Pipeline) Run(corpus domain.Corpus) ([]domain.Point, error) {
	if len(corpus) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	if err := p.embedder.Validate(len(corpus)); err != nil {
		return nil, err
	}

	vocab, weights, err := p.vectorizer.Fit(corpus)
	if err != nil {
		return nil, fmt.Errorf("building term-weight matrix: %w", err)
	}
	p.logger.Infof("weighted %d documents over %d terms", len(corpus), len(vocab.Terms))

	var features mat.Matrix = weights
	if p.reducer != nil {
		reduced, err := p.reducer.Reduce(weights)
		if err != nil {
			return nil, fmt.Errorf("reducing dimensionality: %w", err)
		}
		_, k := reduced.Dims()
		p.logger.Infof("reduced to %d components", k)
		features = reduced
	}

	coords, err := p.embedder.Embed(features)
	if err != nil {
		return nil, fmt.Errorf("embedding %d documents: %w", len(corpus), err)
	}

	points, err := export.Points(corpus.IDs(), export.Normalize(coords))
	if err != nil {
		return nil, err
	}
	return points, nil
}
