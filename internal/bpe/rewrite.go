package bpe

// Rewrite fuses the non-overlapping, left-to-right occurrences of target as
// an adjacent pair in seq and returns the resulting sequence. seq itself is
// left untouched, and the output concatenates to the same text.
//
// A window whose second token was consumed by the previous merge is skipped,
// so a token can take part in at most one merge per pass. The result is
// never nil; like Segment, empty input yields an empty Sequence.
func Rewrite(seq Sequence, target string) Sequence {
	if len(seq) < 2 {
		return append(Sequence{}, seq...)
	}

	out := make(Sequence, 0, len(seq))
	skip := false
	for i := 0; i+1 < len(seq); i++ {
		if skip {
			skip = false
			continue
		}
		if merged := seq[i] + seq[i+1]; merged == target {
			out = append(out, merged)
			skip = true
		} else {
			out = append(out, seq[i])
		}
	}
	if !skip {
		out = append(out, seq[len(seq)-1])
	}

	return out
}
