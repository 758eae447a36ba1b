package main

import (
	"fmt"
	"io"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/text"
	"github.com/example/go-bpe-vocab/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newSegmentCmd() *cobra.Command {
	var (
		input string
		lines bool
	)

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Split text into vocabulary tokens (reads stdin when --text is empty)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			raw := input
			if raw == "" {
				raw, err = readInput(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			phrase, err := text.NormalizeInput(raw)
			if err != nil {
				return fmt.Errorf("segment input: %w", err)
			}

			tok, err := tokenizer.NewVocabTokenizer(cfg.Paths.Vocab, cfg.Paths.VocabFormat)
			if err != nil {
				return err
			}

			tokens, err := tok.Tokenize(phrase)
			if err != nil {
				return err
			}

			return writeTokens(cmd.OutOrStdout(), tokens, lines)
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to segment (default: read stdin); both sources are trimmed and get CRLF/CR converted to LF")
	cmd.Flags().BoolVar(&lines, "lines", false, "Print one token per line instead of |tok|tok|...")

	return cmd
}

// readInput reads the word or phrase to segment from r.
func readInput(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return string(data), nil
}

func writeTokens(w io.Writer, tokens []string, lines bool) error {
	if !lines {
		_, err := fmt.Fprintln(w, bpe.Sequence(tokens).Render())
		return err
	}

	for _, t := range tokens {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}

	return nil
}
