package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/example/go-bpe-vocab/internal/config"
)

// execute runs the root command with args and returns captured stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	orig := slog.Default()
	origCfg := activeCfg
	t.Cleanup(func() {
		slog.SetDefault(orig)
		activeCfg = origCfg
	})

	var stdout, stderr bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"train", "segment", "pairs", "vocab", "bench", "doctor", "serve", "health"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"config", "corpus", "vocab", "vocab-format", "threshold", "log-level", "log-format"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s persistent flag to be registered", name)
		}
	}
}

func TestRoot_InvalidConfigFileFails(t *testing.T) {
	_, _, err := execute(t, nil, "doctor", "--config=/nonexistent/bpevocab.yaml")
	if err == nil {
		t.Fatal("expected error for missing --config file")
	}
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.Config{}

	_, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.Config{
		Paths: config.PathsConfig{Vocab: "/some/vocab.txt"},
	}

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Paths.Vocab != "/some/vocab.txt" {
		t.Errorf("unexpected Vocab: %q", got.Paths.Vocab)
	}
}

func TestRoot_TextLogFormat(t *testing.T) {
	corpus := writeTempFile(t, "corpus.txt", "aaab")
	vocab := tempPath(t, "vocab.txt")

	_, stderr, err := execute(t, nil, "train",
		"--corpus="+corpus, "--vocab="+vocab, "--threshold=2", "--log-format=text")
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	if !strings.Contains(stderr, "msg=\"training finished\"") {
		t.Errorf("expected text-format log line, got:\n%s", stderr)
	}
}
