package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeNormalizes(t *testing.T) {
	tok := New()

	a := tok.Tokenize("The Cat Sat.")
	b := tok.Tokenize("the cat sat")
	require.NotEmpty(t, a)
	assert.Equal(t, a, b, "case and punctuation must not change the token sequence")
}

func TestTokenizeDeterministic(t *testing.T) {
	tok := New()
	text := "Dimensionality reduction preserves neighborhood structure."

	first := tok.Tokenize(text)
	second := tok.Tokenize(text)
	assert.Equal(t, first, second)
}

func TestTokenizeStemsVariants(t *testing.T) {
	tok := New()

	singular := tok.Tokenize("dog")
	plural := tok.Tokenize("dogs")
	assert.Equal(t, singular, plural, "morphological variants must collapse to one stem")
}

func TestTokenizeDropsStopWords(t *testing.T) {
	tok := New()

	tokens := tok.Tokenize("the and of in")
	assert.Empty(t, tokens)
}

func TestTokenizeEmptyText(t *testing.T) {
	tok := New()

	assert.Empty(t, tok.Tokenize(""))
	assert.Empty(t, tok.Tokenize("!!! ... ???"), "punctuation-only input yields no tokens")
}

func TestTokenizeWithoutStopWords(t *testing.T) {
	tok := New(WithoutStopWords())

	tokens := tok.Tokenize("the cat")
	assert.Len(t, tokens, 2)
}

func TestTokenizeExtraStopWords(t *testing.T) {
	tok := New(WithExtraStopWords([]string{"Cat"}))

	tokens := tok.Tokenize("the cat sat")
	require.Len(t, tokens, 1)
	assert.Equal(t, "sat", tokens[0])
}
