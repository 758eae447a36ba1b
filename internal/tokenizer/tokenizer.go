// Package tokenizer segments text with a learned pair-merge vocabulary.
// The vocabulary is loaded from any format internal/vocabfile understands,
// and segmentation follows bpe.Segment exactly.
package tokenizer

// Tokenizer splits text into vocabulary tokens.
type Tokenizer interface {
	// Tokenize returns tokens whose concatenation is text.
	Tokenize(text string) ([]string, error)
}
