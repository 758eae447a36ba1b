package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/go-bpe-vocab/internal/testutil"
	"github.com/example/go-bpe-vocab/internal/text"
)

func TestSegmentCmd_TextFlag(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.txt", "a", "b", "aa")

	stdout, _, err := execute(t, nil, "segment", "--vocab="+vocab, "--text=aab")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}

	if stdout != "|aa|b\n" {
		t.Errorf("stdout = %q; want %q", stdout, "|aa|b\n")
	}
}

func TestSegmentCmd_ReadsStdin(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.json", "a", "b", "aa")

	stdout, _, err := execute(t, strings.NewReader("aab\n"), "segment", "--vocab="+vocab)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}

	if stdout != "|aa|b\n" {
		t.Errorf("stdout = %q; want %q", stdout, "|aa|b\n")
	}
}

func TestSegmentCmd_Lines(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.yaml", "a", "b", "aa")

	stdout, _, err := execute(t, nil, "segment", "--vocab="+vocab, "--text=baa", "--lines")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}

	if stdout != "b\naa\n" {
		t.Errorf("stdout = %q; want %q", stdout, "b\naa\n")
	}
}

func TestSegmentCmd_UnknownCharactersStayUnsplit(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.txt", "a", "b", "aa")

	stdout, _, err := execute(t, nil, "segment", "--vocab="+vocab, "--text=xaab")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}

	if stdout != "|x|aa|b\n" {
		t.Errorf("stdout = %q; want %q", stdout, "|x|aa|b\n")
	}
}

func TestSegmentCmd_EmptyStdinFails(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.txt", "a")

	_, _, err := execute(t, strings.NewReader("  \n"), "segment", "--vocab="+vocab)
	if !errors.Is(err, text.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestSegmentCmd_MissingVocabFails(t *testing.T) {
	_, _, err := execute(t, nil, "segment", "--vocab=/nonexistent/vocab.txt", "--text=aab")
	if err == nil {
		t.Fatal("expected error for missing vocabulary")
	}
}

func TestSegmentCmd_TextFlagAndStdinNormalizedAlike(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.txt", "a", "b", "aa", " ", "\n")

	const raw = "  aab\r\n"

	fromFlag, _, err := execute(t, nil, "segment", "--vocab="+vocab, "--text="+raw)
	if err != nil {
		t.Fatalf("segment --text: %v", err)
	}

	fromStdin, _, err := execute(t, strings.NewReader(raw), "segment", "--vocab="+vocab)
	if err != nil {
		t.Fatalf("segment stdin: %v", err)
	}

	if fromFlag != "|aa|b\n" {
		t.Errorf("--text stdout = %q; want %q", fromFlag, "|aa|b\n")
	}

	if fromFlag != fromStdin {
		t.Errorf("--text and stdin disagree: %q vs %q", fromFlag, fromStdin)
	}
}

func TestSegmentCmd_WhitespaceOnlyTextFlagFails(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.txt", "a")

	_, _, err := execute(t, nil, "segment", "--vocab="+vocab, "--text=   ")
	if !errors.Is(err, text.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}
