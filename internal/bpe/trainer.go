package bpe

import (
	"errors"
	"fmt"
)

// State is the trainer's position in its two-state machine.
type State int

const (
	StateTraining State = iota
	StateDone
)

func (s State) String() string {
	switch s {
	case StateTraining:
		return "training"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TrainOptions configures a training run. Threshold has no default.
type TrainOptions struct {
	// Threshold is the minimum count the best candidate needs to be merged.
	// It is the only stopping criterion.
	Threshold int

	// ExcludeWhitespaceAdjacentPairs is passed through to CountPairs.
	ExcludeWhitespaceAdjacentPairs bool

	// OnMerge, if set, is called after every applied merge.
	OnMerge func(Merge)
}

// Merge describes one applied training iteration.
type Merge struct {
	Pair  string
	Count int

	// Added is false when Pair was already a vocabulary key.
	Added bool

	// SequenceLen is the corpus length in tokens after the rewrite.
	SequenceLen int

	// VocabularyLen is the vocabulary size after the iteration.
	VocabularyLen int
}

// Trainer drives count, select, record and rewrite until the best candidate
// falls below the threshold. It owns its vocabulary for the whole run.
type Trainer struct {
	opts   TrainOptions
	seq    Sequence
	vocab  *Vocabulary
	state  State
	merges []Merge
}

// NewTrainer prepares a run over seq. A nil vocab is seeded with the
// distinct characters of seq.
func NewTrainer(seq Sequence, vocab *Vocabulary, opts TrainOptions) (*Trainer, error) {
	if opts.Threshold < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, opts.Threshold)
	}
	if !coversTwoChars(seq) {
		return nil, fmt.Errorf("%w: corpus has %d characters", ErrSequenceTooShort, seq.CharLen())
	}
	if vocab == nil {
		vocab = seedVocabulary(seq)
	}

	return &Trainer{
		opts:  opts,
		seq:   seq.Clone(),
		vocab: vocab,
		state: StateTraining,
	}, nil
}

// State returns the current state.
func (t *Trainer) State() State { return t.state }

// Sequence returns the current tokenized corpus.
func (t *Trainer) Sequence() Sequence { return t.seq }

// Vocabulary returns the vocabulary being grown.
func (t *Trainer) Vocabulary() *Vocabulary { return t.vocab }

// Merges returns the applied merges in order.
func (t *Trainer) Merges() []Merge { return t.merges }

// Step runs one iteration. When the best candidate's count is below the
// threshold, or there is no candidate at all, the trainer moves to
// StateDone without touching the vocabulary or the sequence and returns
// ErrDone. Every later call also returns ErrDone.
func (t *Trainer) Step() (Merge, error) {
	if t.state == StateDone {
		return Merge{}, ErrDone
	}

	table, err := CountPairs(t.seq, CountOptions{
		ExcludeWhitespaceAdjacentPairs: t.opts.ExcludeWhitespaceAdjacentPairs,
	})
	if err != nil {
		return Merge{}, err
	}

	best := table.Best()
	if best.IsZero() || best.Count < t.opts.Threshold {
		t.state = StateDone
		return Merge{}, ErrDone
	}

	added := t.vocab.Add(best.Pair)
	t.seq = Rewrite(t.seq, best.Pair)

	m := Merge{
		Pair:          best.Pair,
		Count:         best.Count,
		Added:         added,
		SequenceLen:   len(t.seq),
		VocabularyLen: t.vocab.Len(),
	}
	t.merges = append(t.merges, m)
	if t.opts.OnMerge != nil {
		t.opts.OnMerge(m)
	}

	return m, nil
}

// Result is the outcome of a finished training run.
type Result struct {
	Vocabulary *Vocabulary
	Sequence   Sequence
	Merges     []Merge
	Iterations int
}

// Seed splits corpus into one token per character and builds the initial
// vocabulary from its distinct characters.
func Seed(corpus string) (Sequence, *Vocabulary) {
	seq := Chars(corpus)
	return seq, seedVocabulary(seq)
}

// Train runs a Trainer over seq to completion, starting from a vocabulary
// seeded with the distinct characters of seq.
//
// Each applied merge shortens the sequence by at least one token, so the
// number of iterations is bounded by len(seq).
func Train(seq Sequence, opts TrainOptions) (Result, error) {
	tr, err := NewTrainer(seq, nil, opts)
	if err != nil {
		return Result{}, err
	}

	for {
		_, err := tr.Step()
		if errors.Is(err, ErrDone) {
			break
		}
		if err != nil {
			return Result{}, err
		}
	}

	return Result{
		Vocabulary: tr.vocab,
		Sequence:   tr.seq,
		Merges:     tr.merges,
		Iterations: len(tr.merges),
	}, nil
}
