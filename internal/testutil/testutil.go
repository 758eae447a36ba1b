// Package testutil provides shared fixtures and skip helpers for tests.
//
// The Write* helpers place files in tb.TempDir and fail the test on any I/O
// error, so callers only deal with the returned path.
//
// Typical usage:
//
//	func TestTrainCommand(t *testing.T) {
//	    corpus := testutil.WriteCorpus(t, "aaab")
//	    vocab := testutil.WriteVocab(t, "vocab.json", "a", "b", "aa")
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/vocabfile"
)

// LargeCorpusEnv names a corpus file used by the slower end-to-end tests.
const LargeCorpusEnv = "BPEVOCAB_TEST_CORPUS"

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(tb testing.TB, name, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}

	return path
}

// WriteCorpus writes a corpus.txt fixture.
func WriteCorpus(tb testing.TB, content string) string {
	tb.Helper()

	return WriteFile(tb, "corpus.txt", content)
}

// Vocabulary builds a vocabulary from tokens in order, storing each token's
// character length.
func Vocabulary(tokens ...string) *bpe.Vocabulary {
	v := bpe.NewVocabulary()
	for _, tok := range tokens {
		v.Add(tok)
	}

	return v
}

// WriteVocab saves a vocabulary of tokens to name inside a fresh temp dir.
// The format follows the extension of name.
func WriteVocab(tb testing.TB, name string, tokens ...string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)

	if err := vocabfile.Save(path, Vocabulary(tokens...), vocabfile.DetectFormat(path)); err != nil {
		tb.Fatalf("save vocabulary %s: %v", path, err)
	}

	return path
}

// RequireLargeCorpus skips the test unless LargeCorpusEnv names a readable
// file, and returns that path.
func RequireLargeCorpus(tb testing.TB) string {
	tb.Helper()

	path := os.Getenv(LargeCorpusEnv)
	if path == "" {
		tb.Skipf("large corpus not configured; set %s to a text file", LargeCorpusEnv)
		return ""
	}

	if _, err := os.Stat(path); err != nil {
		tb.Skipf("large corpus not available at %s=%q: %v", LargeCorpusEnv, path, err)
		return ""
	}

	return path
}
