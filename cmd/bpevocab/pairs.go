package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/text"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPairsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Show the first-iteration merge candidates of the corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			corpus, err := text.LoadCorpus(cfg.Paths.Corpus, text.CorpusOptions{
				LineEndings: cfg.Train.NormalizeLineEndings,
				NFC:         cfg.Train.NormalizeNFC,
			})
			if err != nil {
				return err
			}

			table, err := bpe.CountPairs(bpe.Chars(corpus), bpe.CountOptions{
				ExcludeWhitespaceAdjacentPairs: cfg.Train.ExcludeWhitespaceAdjacentPairs,
			})
			if err != nil {
				return fmt.Errorf("count pairs in %q: %w", cfg.Paths.Corpus, err)
			}

			writePairs(cmd.OutOrStdout(), table, top)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of candidates to list (0 = all)")

	return cmd
}

func writePairs(w io.Writer, table *bpe.PairTable, top int) {
	var data [][]string
	for i, c := range table.Top(top) {
		data = append(data, []string{strconv.Itoa(i + 1), strconv.Quote(c.Pair), strconv.Itoa(c.Count)})
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"RANK", "PAIR", "COUNT"})
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetBorder(false)
	tw.AppendBulk(data)
	tw.Render()

	best := table.Best()
	if best.IsZero() {
		_, _ = fmt.Fprintln(w, "best: none")
		return
	}
	_, _ = fmt.Fprintf(w, "best: %q (count %d of %d distinct pairs)\n", best.Pair, best.Count, table.Len())
}
