// Package bpe learns a subword vocabulary by greedy pair-frequency merging over
// codepoints and segments text against a learned vocabulary.
//
// Training repeatedly counts adjacent token pairs (CountPairs), selects the
// most frequent one (PairTable.Best), records it in the vocabulary and fuses
// its non-overlapping occurrences (Rewrite), until the best count drops below
// a caller-supplied threshold. Segmentation (Segment) carves text into
// vocabulary tokens, longest stored length first.
//
// Everything in this package is pure and in-memory: no I/O, no logging, no
// goroutines.
package bpe

import "errors"

var (
	// ErrSequenceTooShort is returned when a pair-counting operation is asked
	// to work on text covering fewer than two characters.
	ErrSequenceTooShort = errors.New("sequence must cover at least 2 characters")

	// ErrInvalidThreshold is returned when the frequency threshold is below 1.
	ErrInvalidThreshold = errors.New("frequency threshold must be at least 1")

	// ErrDone is returned by Trainer.Step once training has finished.
	ErrDone = errors.New("training finished")
)
