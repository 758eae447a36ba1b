package bpe

import (
	"cmp"
	"iter"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/v2/maps/treemap"
)

// CountOptions controls which adjacent pairs CountPairs records.
type CountOptions struct {
	// ExcludeWhitespaceAdjacentPairs drops every candidate whose second token
	// begins or ends with whitespace.
	ExcludeWhitespaceAdjacentPairs bool
}

// Candidate is a merged pair string and the number of times it occurred.
// The zero Candidate is the sentinel for "no candidate".
type Candidate struct {
	Pair  string
	Count int
}

// IsZero reports whether c is the no-candidate sentinel.
func (c Candidate) IsZero() bool { return c.Count == 0 }

// PairTable maps candidate strings to occurrence counts. Keys iterate in
// ascending lexicographic order.
type PairTable struct {
	counts *treemap.Map[string, int]
}

// NewPairTable builds a table from explicit counts.
func NewPairTable(counts map[string]int) *PairTable {
	t := &PairTable{counts: treemap.New[string, int]()}
	for pair, n := range counts {
		t.counts.Put(pair, n)
	}

	return t
}

// CountPairs slides a width-2 window over seq and counts every concatenated
// pair. seq is not modified.
func CountPairs(seq Sequence, opts CountOptions) (*PairTable, error) {
	if !coversTwoChars(seq) {
		return nil, ErrSequenceTooShort
	}

	t := &PairTable{counts: treemap.New[string, int]()}
	for i := 0; i+1 < len(seq); i++ {
		if opts.ExcludeWhitespaceAdjacentPairs && whitespaceEdged(seq[i+1]) {
			continue
		}
		t.add(seq[i] + seq[i+1])
	}

	return t, nil
}

func (t *PairTable) add(pair string) {
	n, _ := t.counts.Get(pair)
	t.counts.Put(pair, n+1)
}

// Len returns the number of distinct candidates.
func (t *PairTable) Len() int {
	if t == nil || t.counts == nil {
		return 0
	}

	return t.counts.Size()
}

// Get returns the count recorded for pair.
func (t *PairTable) Get(pair string) (int, bool) {
	if t == nil || t.counts == nil {
		return 0, false
	}

	return t.counts.Get(pair)
}

// All iterates candidates in ascending key order.
func (t *PairTable) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		if t == nil || t.counts == nil {
			return
		}
		it := t.counts.Iterator()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Best selects the merge candidate. Keys are visited in ascending order and
// the running best is only replaced by a strictly greater count, so among
// equal maxima the lexicographically smallest key wins. An empty table
// yields the zero Candidate.
func (t *PairTable) Best() Candidate {
	var best Candidate
	for pair, n := range t.All() {
		if n > best.Count {
			best = Candidate{Pair: pair, Count: n}
		}
	}

	return best
}

// Top returns up to n candidates ordered by count descending, then key
// ascending. n <= 0 returns all of them.
func (t *PairTable) Top(n int) []Candidate {
	out := make([]Candidate, 0, t.Len())
	for pair, count := range t.All() {
		out = append(out, Candidate{Pair: pair, Count: count})
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}

	return out
}

func coversTwoChars(seq Sequence) bool {
	switch len(seq) {
	case 0:
		return false
	case 1:
		return utf8.RuneCountInString(seq[0]) >= 2
	default:
		return true
	}
}

func whitespaceEdged(tok string) bool {
	if tok == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(tok)
	last, _ := utf8.DecodeLastRuneInString(tok)

	return unicode.IsSpace(first) || unicode.IsSpace(last)
}
