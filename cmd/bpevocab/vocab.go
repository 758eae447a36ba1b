package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/vocabfile"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect and convert vocabulary files",
	}

	cmd.AddCommand(newVocabShowCmd())
	cmd.AddCommand(newVocabConvertCmd())
	return cmd
}

func newVocabShowCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the vocabulary in insertion order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			v, err := loadVocab(cfg.Paths.Vocab, cfg.Paths.VocabFormat)
			if err != nil {
				return err
			}

			writeVocab(cmd.OutOrStdout(), v, limit)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most N entries (0 = all)")

	return cmd
}

func newVocabConvertCmd() *cobra.Command {
	var (
		in, out  string
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite a vocabulary file in another format",
		RunE: func(_ *cobra.Command, _ []string) error {
			if in == "" {
				return errors.New("--in is required")
			}
			if out == "" {
				return errors.New("--out is required")
			}

			v, err := loadVocab(in, from)
			if err != nil {
				return err
			}

			format, err := vocabfile.Resolve(out, to)
			if err != nil {
				return err
			}

			return vocabfile.Save(out, v, format)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Source vocabulary file (required)")
	cmd.Flags().StringVar(&out, "out", "", "Destination vocabulary file (required)")
	cmd.Flags().StringVar(&from, "from", "", "Source format: text|json|yaml (default: from extension)")
	cmd.Flags().StringVar(&to, "to", "", "Destination format: text|json|yaml (default: from extension)")

	return cmd
}

func loadVocab(path, rawFormat string) (*bpe.Vocabulary, error) {
	format, err := vocabfile.Resolve(path, rawFormat)
	if err != nil {
		return nil, err
	}

	return vocabfile.Load(path, format)
}

func writeVocab(w io.Writer, v *bpe.Vocabulary, limit int) {
	var data [][]string
	for tok, length := range v.All() {
		if limit > 0 && len(data) == limit {
			break
		}
		data = append(data, []string{strconv.Itoa(len(data) + 1), strconv.Quote(tok), strconv.Itoa(length)})
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"#", "TOKEN", "LENGTH"})
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetBorder(false)
	tw.AppendBulk(data)
	tw.Render()

	_, _ = fmt.Fprintf(w, "%d of %d entries\n", len(data), v.Len())
}
