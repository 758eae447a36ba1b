package main

import (
	"strings"
	"testing"

	"github.com/example/go-bpe-vocab/internal/testutil"
	"github.com/example/go-bpe-vocab/internal/vocabfile"
)

func TestVocabShowCmd_InsertionOrder(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.txt", "b", "a", "ba")

	stdout, _, err := execute(t, nil, "vocab", "show", "--vocab="+vocab)
	if err != nil {
		t.Fatalf("vocab show: %v", err)
	}

	ib := strings.Index(stdout, `"b"`)
	ia := strings.Index(stdout, `"a"`)
	iba := strings.Index(stdout, `"ba"`)

	if ib < 0 || ia < 0 || iba < 0 || ib > ia || ia > iba {
		t.Errorf("entries not in insertion order:\n%s", stdout)
	}

	if !strings.Contains(stdout, "3 of 3 entries") {
		t.Errorf("missing entry count:\n%s", stdout)
	}
}

func TestVocabShowCmd_Limit(t *testing.T) {
	vocab := testutil.WriteVocab(t, "vocab.txt", "a", "b", "aa")

	stdout, _, err := execute(t, nil, "vocab", "show", "--vocab="+vocab, "--limit=2")
	if err != nil {
		t.Fatalf("vocab show: %v", err)
	}

	if strings.Contains(stdout, `"aa"`) || !strings.Contains(stdout, "2 of 3 entries") {
		t.Errorf("limit not applied:\n%s", stdout)
	}
}

func TestVocabConvertCmd_TextToYAML(t *testing.T) {
	in := testutil.WriteVocab(t, "vocab.txt", "a", " ", "a ")
	out := tempPath(t, "vocab.yml")

	_, _, err := execute(t, nil, "vocab", "convert", "--in="+in, "--out="+out)
	if err != nil {
		t.Fatalf("vocab convert: %v", err)
	}

	v, err := vocabfile.Load(out, vocabfile.FormatYAML)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := v.Keys(); len(got) != 3 || got[0] != "a" || got[1] != " " || got[2] != "a " {
		t.Errorf("keys = %q; want [a, space, a+space]", got)
	}
}

func TestVocabConvertCmd_ExplicitFormats(t *testing.T) {
	in := testutil.WriteVocab(t, "vocab.json", "x", "y")
	out := tempPath(t, "vocab.dat")

	_, _, err := execute(t, nil, "vocab", "convert", "--in="+in, "--out="+out, "--from=json", "--to=text")
	if err != nil {
		t.Fatalf("vocab convert: %v", err)
	}

	v, err := vocabfile.Load(out, vocabfile.FormatText)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if v.Len() != 2 {
		t.Errorf("Len = %d; want 2", v.Len())
	}
}

func TestVocabConvertCmd_RequiresInAndOut(t *testing.T) {
	if _, _, err := execute(t, nil, "vocab", "convert", "--out=x.json"); err == nil || !strings.Contains(err.Error(), "--in") {
		t.Errorf("expected --in error, got %v", err)
	}

	if _, _, err := execute(t, nil, "vocab", "convert", "--in=x.txt"); err == nil || !strings.Contains(err.Error(), "--out") {
		t.Errorf("expected --out error, got %v", err)
	}
}

func TestVocabConvertCmd_UnknownFormat(t *testing.T) {
	in := testutil.WriteVocab(t, "vocab.txt", "a")

	_, _, err := execute(t, nil, "vocab", "convert", "--in="+in, "--out="+tempPath(t, "v.txt"), "--to=xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}
