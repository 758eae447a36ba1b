// Package text reads training corpora and cleans up text before it reaches
// the trainer or the segmenter.
package text

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// CorpusOptions selects the rewrites applied to a corpus. The zero value
// leaves the corpus byte-for-byte unchanged.
type CorpusOptions struct {
	// LineEndings converts CRLF and bare CR to LF.
	LineEndings bool

	// NFC composes the corpus to Unicode Normalization Form C, so that e.g.
	// "e" + U+0301 and "é" count as the same character.
	NFC bool
}

// NormalizeInput prepares a word or phrase typed at the console for
// segmentation. It normalizes line endings, trims surrounding whitespace
// and rejects empty input.
func NormalizeInput(s string) (string, error) {
	s = strings.TrimSpace(normalizeLineEndings(s))
	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}

// NormalizeCorpus applies opts to s. Unlike NormalizeInput it never trims:
// leading and trailing whitespace is training data.
func NormalizeCorpus(s string, opts CorpusOptions) (string, error) {
	if opts.LineEndings {
		s = normalizeLineEndings(s)
	}
	if opts.NFC {
		s = norm.NFC.String(s)
	}
	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}

// normalizeLineEndings rewrites CRLF, then bare CR, to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
