// Package doctor provides preflight checks for bpevocab.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"unicode/utf8"

	"github.com/example/go-bpe-vocab/internal/text"
	"github.com/example/go-bpe-vocab/internal/vocabfile"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// minCorpusChars is the shortest corpus the trainer accepts.
const minCorpusChars = 2

// Config describes what to check. SkipCorpus skips the corpus check for
// segment-only setups. RequireVocab fails when VocabPath does not exist yet;
// otherwise a missing vocabulary is reported as not trained.
type Config struct {
	CorpusPath    string
	CorpusOptions text.CorpusOptions
	SkipCorpus    bool

	VocabPath    string
	VocabFormat  string
	RequireVocab bool

	Threshold int
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(w io.Writer, check string, err error) {
	r.failures = append(r.failures, fmt.Sprintf("%s: %v", check, err))
	fmt.Fprintf(w, "%s %s: %v\n", FailMark, check, err)
}

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- corpus -----------------------------------------------------------
	if cfg.SkipCorpus {
		fmt.Fprintf(w, "%s corpus: skipped\n", PassMark)
	} else if n, err := checkCorpus(cfg.CorpusPath, cfg.CorpusOptions); err != nil {
		res.fail(w, "corpus", err)
	} else {
		fmt.Fprintf(w, "%s corpus: %s (%d characters)\n", PassMark, cfg.CorpusPath, n)
	}

	// ---- threshold --------------------------------------------------------
	if cfg.Threshold < 1 {
		res.fail(w, "threshold", fmt.Errorf("must be at least 1, got %d", cfg.Threshold))
	} else {
		fmt.Fprintf(w, "%s threshold: %d\n", PassMark, cfg.Threshold)
	}

	// ---- vocabulary -------------------------------------------------------
	n, err := checkVocab(cfg.VocabPath, cfg.VocabFormat)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !cfg.RequireVocab:
		fmt.Fprintf(w, "%s vocabulary: %s not trained yet\n", PassMark, cfg.VocabPath)
	case err != nil:
		res.fail(w, "vocabulary", err)
	default:
		fmt.Fprintf(w, "%s vocabulary: %s (%d tokens)\n", PassMark, cfg.VocabPath, n)
	}

	return res
}

// checkCorpus loads the corpus and returns its length in characters.
func checkCorpus(path string, opts text.CorpusOptions) (int, error) {
	if path == "" {
		return 0, errors.New("no corpus path configured")
	}
	corpus, err := text.LoadCorpus(path, opts)
	if err != nil {
		return 0, err
	}
	n := utf8.RuneCountInString(corpus)
	if n < minCorpusChars {
		return 0, fmt.Errorf("%s has %d character(s), need at least %d", path, n, minCorpusChars)
	}
	return n, nil
}

// checkVocab parses the vocabulary file and returns its entry count.
func checkVocab(path, rawFormat string) (int, error) {
	if path == "" {
		return 0, errors.New("no vocabulary path configured")
	}
	format, err := vocabfile.Resolve(path, rawFormat)
	if err != nil {
		return 0, err
	}
	v, err := vocabfile.Load(path, format)
	if err != nil {
		return 0, err
	}
	return v.Len(), nil
}
