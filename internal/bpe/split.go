package bpe

import (
	"strings"
	"unicode/utf8"
)

// Sequence is an ordered list of tokens whose concatenation is the text it
// was built from.
type Sequence []string

// Chars splits s into one token per codepoint.
func Chars(s string) Sequence {
	seq := make(Sequence, 0, utf8.RuneCountInString(s))
	for s != "" {
		_, size := utf8.DecodeRuneInString(s)
		seq = append(seq, s[:size])
		s = s[size:]
	}

	return seq
}

// String concatenates the tokens back into text.
func (s Sequence) String() string {
	return strings.Join(s, "")
}

// Render formats the sequence as |tok|tok|...|tok.
func (s Sequence) Render() string {
	return "|" + strings.Join(s, "|")
}

// CharLen is the number of codepoints the sequence covers.
func (s Sequence) CharLen() int {
	n := 0
	for _, tok := range s {
		n += utf8.RuneCountInString(tok)
	}

	return n
}

// Clone returns a copy that shares no backing array with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}

	return append(Sequence(nil), s...)
}

// SplitKeep splits s on every literal, non-overlapping occurrence of sep,
// scanning left to right, and keeps each occurrence as its own element.
// Empty pieces are never returned. An empty sep returns s unsplit.
//
// Matches of a valid UTF-8 sep always start and end on codepoint boundaries,
// so byte offsets from strings.Index never cut a character in half.
func SplitKeep(s, sep string) []string {
	if s == "" {
		return nil
	}
	if sep == "" {
		return []string{s}
	}

	var parts []string
	for {
		i := strings.Index(s, sep)
		if i < 0 {
			break
		}
		if i > 0 {
			parts = append(parts, s[:i])
		}
		parts = append(parts, sep)
		s = s[i+len(sep):]
	}
	if s != "" {
		parts = append(parts, s)
	}

	return parts
}

// charLen counts codepoints in tok.
func charLen(tok string) int {
	return utf8.RuneCountInString(tok)
}
