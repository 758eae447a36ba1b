package bpe

import (
	"cmp"
	"slices"
	"strings"
)

// unit is a piece of the text being segmented. Final units matched a
// vocabulary token exactly and are never split again.
type unit struct {
	text  string
	final bool
}

// PriorityOrder returns the vocabulary tokens in the order Segment applies
// them: largest stored length first, ties broken by ascending key. It is the
// reverse of sorting by (length ascending, key descending).
func PriorityOrder(vocab *Vocabulary) []string {
	type entry struct {
		tok    string
		length int
	}

	entries := make([]entry, 0, vocab.Len())
	for tok, n := range vocab.All() {
		entries = append(entries, entry{tok: tok, length: n})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.length, b.length); c != 0 {
			return c
		}
		return strings.Compare(b.tok, a.tok)
	})
	slices.Reverse(entries)

	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.tok
	}

	return order
}

// Segment carves text into vocabulary tokens. Tokens are applied in
// PriorityOrder; each one splits every unfinalized unit on its literal
// occurrences, and pieces equal to the token become final. Spans no token
// matches are returned as-is, so the result always concatenates to text.
func Segment(text string, vocab *Vocabulary) Sequence {
	if text == "" {
		return Sequence{}
	}

	units := []unit{{text: text}}
	for _, tok := range PriorityOrder(vocab) {
		if tok == "" {
			continue
		}
		units = splitUnits(units, tok)
	}

	out := make(Sequence, 0, len(units))
	for _, u := range units {
		if u.text != "" {
			out = append(out, u.text)
		}
	}

	return out
}

// splitUnits rebuilds the unit list with tok split out of every unfinalized
// unit.
func splitUnits(units []unit, tok string) []unit {
	next := make([]unit, 0, len(units))
	for _, u := range units {
		if u.final || !strings.Contains(u.text, tok) {
			next = append(next, u)
			continue
		}
		for _, piece := range SplitKeep(u.text, tok) {
			next = append(next, unit{text: piece, final: piece == tok})
		}
	}

	return next
}
