package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/embedding"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/logger"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/reducer"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/tokenizer"
	"github.com/sunatthegilddotcom/wiki-tSNE/internal/vectorizer"
)

func testCorpus() domain.Corpus {
	return domain.NewCorpus(map[string]string{
		"A": "cat cat dog",
		"B": "dog dog bird",
		"C": "bird bird cat",
	})
}

// newPipeline feeds tf-idf straight into the embedder (no SVD stage), which
// is the configuration the reproducibility contract is specified against.
func newPipeline(seed int64) *Pipeline {
	tok := tokenizer.New()
	vec := vectorizer.New(tok, 0)
	emb := embedding.New(2, 100, 100, 0, seed)
	return New(vec, nil, emb, logger.NewDiscard())
}

func TestRunProducesNormalizedPoints(t *testing.T) {
	points, err := newPipeline(7).Run(testCorpus())
	require.NoError(t, err)
	require.Len(t, points, 3)

	// corpus order is preserved end to end
	assert.Equal(t, "A", points[0].ID)
	assert.Equal(t, "B", points[1].ID)
	assert.Equal(t, "C", points[2].ID)

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 1.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, 1.0)
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	assert.InDelta(t, 0.0, minX, 1e-12)
	assert.InDelta(t, 1.0, maxX, 1e-12)
	assert.InDelta(t, 0.0, minY, 1e-12)
	assert.InDelta(t, 1.0, maxY, 1e-12)
}

func TestRunReproducibleWithSeed(t *testing.T) {
	first, err := newPipeline(7).Run(testCorpus())
	require.NoError(t, err)
	second, err := newPipeline(7).Run(testCorpus())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.InDelta(t, first[i].X, second[i].X, 1e-9)
		assert.InDelta(t, first[i].Y, second[i].Y, 1e-9)
	}
}

func TestRunWithReducer(t *testing.T) {
	docs := domain.NewCorpus(map[string]string{
		"A": "cat cat dog fish",
		"B": "dog dog bird whale",
		"C": "bird bird cat shark",
		"D": "fish whale shark cat",
		"E": "whale fish bird dog",
	})
	tok := tokenizer.New()
	vec := vectorizer.New(tok, 0)
	svd, err := reducer.New(50)
	require.NoError(t, err)
	emb := embedding.New(2, 100, 100, 0, 3)

	points, err := New(vec, svd, emb, logger.NewDiscard()).Run(docs)
	require.NoError(t, err)
	assert.Len(t, points, 5)
}

func TestRunEmptyCorpus(t *testing.T) {
	_, err := newPipeline(1).Run(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestRunInvalidPerplexityFailsFast(t *testing.T) {
	tok := tokenizer.New()
	vec := vectorizer.New(tok, 0)
	// perplexity 5 with only 3 documents is out of range
	emb := embedding.New(5, 100, 100, 0, 1)

	_, err := New(vec, nil, emb, logger.NewDiscard()).Run(testCorpus())
	assert.ErrorIs(t, err, domain.ErrInvalidPerplexity)
}
