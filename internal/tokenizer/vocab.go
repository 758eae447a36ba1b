package tokenizer

import (
	"errors"
	"fmt"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/vocabfile"
)

// ErrEmptyPath is returned when NewVocabTokenizer is called with an empty path.
var ErrEmptyPath = errors.New("vocabulary path must not be empty")

// VocabTokenizer implements Tokenizer over a fixed vocabulary. The
// vocabulary is treated as read-only after construction.
type VocabTokenizer struct {
	vocab *bpe.Vocabulary
}

// NewVocabTokenizer loads the vocabulary at path. An empty format is
// detected from the file extension.
func NewVocabTokenizer(path, format string) (*VocabTokenizer, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := vocabfile.Resolve(path, format)
	if err != nil {
		return nil, err
	}

	v, err := vocabfile.Load(path, f)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer vocabulary: %w", err)
	}

	return &VocabTokenizer{vocab: v}, nil
}

// NewVocabTokenizerFromVocabulary wraps an in-memory vocabulary, typically
// the result of a training run.
func NewVocabTokenizerFromVocabulary(v *bpe.Vocabulary) *VocabTokenizer {
	return &VocabTokenizer{vocab: v}
}

// Vocabulary returns the underlying vocabulary.
func (t *VocabTokenizer) Vocabulary() *bpe.Vocabulary { return t.vocab }

// Tokenize segments text. Empty text yields an empty slice.
func (t *VocabTokenizer) Tokenize(text string) ([]string, error) {
	return bpe.Segment(text, t.vocab), nil
}
