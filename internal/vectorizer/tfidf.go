package vectorizer

import (
	"math"
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
)

// TFIDF builds a vocabulary and a sparse document-term weight matrix from a
// corpus. Weighting follows the classic scheme: tf(i,j) is the count of term j
// in document i divided by the document's total token count, and
// idf(j) = log(N / df(j)) over the N corpus documents.
type TFIDF struct {
	tokenizer   domain.Tokenizer
	maxFeatures int
}

// New creates a vectorizer. maxFeatures > 0 caps the vocabulary at the terms
// with the highest total collection frequency (ties broken alphabetically);
// maxFeatures <= 0 keeps every term.
func New(tokenizer domain.Tokenizer, maxFeatures int) *TFIDF {
	return &TFIDF{tokenizer: tokenizer, maxFeatures: maxFeatures}
}

// Fit tokenizes every document and materializes the tf-idf matrix. Rows follow
// corpus order; columns follow the sorted vocabulary. Only nonzero weights are
// stored. A corpus of zero documents or one whose combined vocabulary is empty
// is a configuration error.
func (v *TFIDF) Fit(corpus domain.Corpus) (domain.Vocabulary, *sparse.CSR, error) {
	if len(corpus) == 0 {
		return domain.Vocabulary{}, nil, domain.ErrEmptyCorpus
	}

	counts := make([]map[string]int, len(corpus))
	totals := make([]int, len(corpus))
	df := make(map[string]int)
	collection := make(map[string]int)

	for i, doc := range corpus {
		tokens := v.tokenizer.Tokenize(doc.Text)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		counts[i] = tf
		totals[i] = len(tokens)
		for term, n := range tf {
			df[term]++
			collection[term] += n
		}
	}

	vocab := v.buildVocabulary(df, collection)
	if len(vocab.Terms) == 0 {
		return domain.Vocabulary{}, nil, domain.ErrEmptyVocabulary
	}

	n := float64(len(corpus))
	dok := sparse.NewDOK(len(corpus), len(vocab.Terms))
	for i, tf := range counts {
		if totals[i] == 0 {
			continue
		}
		total := float64(totals[i])
		for term, count := range tf {
			col, ok := vocab.Index[term]
			if !ok {
				continue
			}
			weight := float64(count) / total * math.Log(n/float64(df[term]))
			if weight != 0 {
				dok.Set(i, col, weight)
			}
		}
	}
	return vocab, dok.ToCSR(), nil
}

// buildVocabulary assigns stable column indices: terms sorted alphabetically,
// optionally capped to the maxFeatures most frequent terms first.
func (v *TFIDF) buildVocabulary(df, collection map[string]int) domain.Vocabulary {
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		// Keep the most frequent terms; the slice is already alphabetical so
		// a stable sort leaves ties in alphabetical order.
		sort.SliceStable(terms, func(a, b int) bool {
			return collection[terms[a]] > collection[terms[b]]
		})
		terms = terms[:v.maxFeatures]
		sort.Strings(terms)
	}

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return domain.Vocabulary{Terms: terms, Index: index}
}
