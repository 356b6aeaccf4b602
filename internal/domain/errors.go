package domain

import "errors"

// Configuration errors. These are fatal and surfaced before heavy computation
// starts; the pipeline is re-run wholesale after the caller fixes the input.
var (
	ErrEmptyCorpus       = errors.New("corpus contains no documents")
	ErrEmptyVocabulary   = errors.New("corpus vocabulary is empty")
	ErrInvalidPerplexity = errors.New("perplexity must satisfy 1 <= perplexity < document count")
	ErrInvalidComponents = errors.New("component count must be positive")
)
