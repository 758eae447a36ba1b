package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/config"
	"github.com/example/go-bpe-vocab/internal/testutil"
	"github.com/example/go-bpe-vocab/internal/vocabfile"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	return testutil.WriteFile(t, name, content)
}

func tempPath(t *testing.T, name string) string {
	t.Helper()

	return filepath.Join(t.TempDir(), name)
}

func TestTrainCmd_WritesVocabulary(t *testing.T) {
	corpus := testutil.WriteCorpus(t, "aaab")
	vocab := tempPath(t, "vocab.txt")

	stdout, _, err := execute(t, nil, "train",
		"--corpus="+corpus, "--vocab="+vocab, "--threshold=2", "--show-tokens")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	data, err := os.ReadFile(vocab)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(data), "a: 1\nb: 1\naa: 2\n"; got != want {
		t.Errorf("vocab file = %q; want %q", got, want)
	}

	if !strings.Contains(stdout, "vocabulary: 3 tokens (1 merges)") {
		t.Errorf("stdout missing summary:\n%s", stdout)
	}

	if !strings.Contains(stdout, "|aa|a|b\n") {
		t.Errorf("stdout missing tokenized corpus:\n%s", stdout)
	}
}

func TestTrainCmd_RequiresThreshold(t *testing.T) {
	corpus := testutil.WriteCorpus(t, "aaab")

	_, _, err := execute(t, nil, "train", "--corpus="+corpus, "--vocab="+tempPath(t, "v.txt"))
	if !errors.Is(err, config.ErrThresholdRequired) {
		t.Fatalf("expected ErrThresholdRequired, got %v", err)
	}
}

func TestTrainCmd_ShortCorpusFails(t *testing.T) {
	corpus := testutil.WriteCorpus(t, "a")

	_, _, err := execute(t, nil, "train",
		"--corpus="+corpus, "--vocab="+tempPath(t, "v.txt"), "--threshold=1")
	if !errors.Is(err, bpe.ErrSequenceTooShort) {
		t.Fatalf("expected ErrSequenceTooShort, got %v", err)
	}
}

func TestTrainCmd_MissingCorpusFails(t *testing.T) {
	_, _, err := execute(t, nil, "train",
		"--corpus=/nonexistent/corpus.txt", "--vocab="+tempPath(t, "v.txt"), "--threshold=1")
	if err == nil {
		t.Fatal("expected error for missing corpus")
	}
}

func TestTrainCmd_JSONFormatFromFlag(t *testing.T) {
	corpus := testutil.WriteCorpus(t, "aaab")
	vocab := tempPath(t, "vocab.out")

	_, _, err := execute(t, nil, "train",
		"--corpus="+corpus, "--vocab="+vocab, "--vocab-format=json", "--threshold=2")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	v, err := vocabfile.Load(vocab, vocabfile.FormatJSON)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := v.Keys(); strings.Join(got, ",") != "a,b,aa" {
		t.Errorf("keys = %v; want [a b aa]", got)
	}
}

func TestTrainCmd_LogsProgressWithRunID(t *testing.T) {
	corpus := testutil.WriteCorpus(t, "abababab")
	vocab := tempPath(t, "vocab.txt")

	_, stderr, err := execute(t, nil, "train",
		"--corpus="+corpus, "--vocab="+vocab, "--threshold=2", "--progress-every=1")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	for _, want := range []string{`"run_id"`, `"training started"`, `"training progress"`, `"training finished"`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("logs missing %s:\n%s", want, stderr)
		}
	}
}

func TestTrainCmd_ExcludeWhitespacePairs(t *testing.T) {
	corpus := testutil.WriteCorpus(t, "a a a ")
	vocab := tempPath(t, "vocab.txt")

	_, _, err := execute(t, nil, "train",
		"--corpus="+corpus, "--vocab="+vocab, "--threshold=2", "--exclude-whitespace-pairs")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	v, err := vocabfile.Load(vocab, vocabfile.FormatText)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if v.Has("a ") {
		t.Errorf("whitespace-edged pair %q should not be learned; keys = %v", "a ", v.Keys())
	}
}
