package tokenizer

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Tokenizer normalizes raw text into a sequence of index terms: lower-cased,
// punctuation-free, stop-word-filtered and stemmed to a canonical root.
// Tokenization is deterministic for a fixed stop-word set.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithoutStopWords disables the built-in English stop-word set.
func WithoutStopWords() Option {
	return func(t *Tokenizer) {
		t.stopwords = make(map[string]struct{})
	}
}

// WithExtraStopWords appends terms to the stop-word set. Terms are matched
// after lower-casing, before stemming.
func WithExtraStopWords(words []string) Option {
	return func(t *Tokenizer) {
		for _, w := range words {
			t.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// New creates a tokenizer with the default English stop-word set.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{stopwords: defaultStopwords()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the normalized term sequence for the given text. Empty
// text (or text consisting solely of punctuation and stop words) yields an
// empty sequence, not an error.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	words := strings.Fields(b.String())
	if len(words) == 0 {
		return nil
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, isStop := t.stopwords[w]; isStop {
			continue
		}
		stem := english.Stem(w, true)
		if stem == "" {
			continue
		}
		out = append(out, stem)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now", "he", "she", "they", "them", "his", "her", "their", "we", "you", "i", "me", "my", "not", "no", "nor", "only", "also", "has", "have", "had", "do", "does", "did", "which", "who", "whom", "what", "when", "where", "why", "how", "all", "any", "both", "each", "few", "more", "most", "other", "some",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
