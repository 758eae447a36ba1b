package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/config"
	"github.com/example/go-bpe-vocab/internal/text"
	"github.com/example/go-bpe-vocab/internal/vocabfile"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	var showTokens bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Learn a vocabulary from the corpus and write it to --vocab",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			threshold, err := cfg.RequireThreshold()
			if err != nil {
				return err
			}

			format, err := vocabfile.Resolve(cfg.Paths.Vocab, cfg.Paths.VocabFormat)
			if err != nil {
				return err
			}

			res, err := runTrain(cfg, threshold, slog.With("run_id", uuid.NewString()))
			if err != nil {
				return err
			}

			if err := vocabfile.Save(cfg.Paths.Vocab, res.Vocabulary, format); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "vocabulary: %d tokens (%d merges) -> %s\n",
				res.Vocabulary.Len(), res.Iterations, cfg.Paths.Vocab)

			if showTokens {
				_, _ = fmt.Fprintln(out, res.Sequence.Render())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showTokens, "show-tokens", false, "Print the tokenized corpus as |tok|tok|... after training")

	return cmd
}

// runTrain loads the corpus and trains to completion, logging progress every
// cfg.Train.ProgressEvery vocabulary entries.
func runTrain(cfg config.Config, threshold int, logger *slog.Logger) (bpe.Result, error) {
	corpus, err := text.LoadCorpus(cfg.Paths.Corpus, text.CorpusOptions{
		LineEndings: cfg.Train.NormalizeLineEndings,
		NFC:         cfg.Train.NormalizeNFC,
	})
	if err != nil {
		return bpe.Result{}, err
	}

	seq, seed := bpe.Seed(corpus)
	logger.Info("training started",
		"corpus", cfg.Paths.Corpus,
		"chars", len(seq),
		"distinct_chars", seed.Len(),
		"threshold", threshold,
	)

	every := cfg.Train.ProgressEvery
	start := time.Now()

	res, err := bpe.Train(seq, bpe.TrainOptions{
		Threshold:                      threshold,
		ExcludeWhitespaceAdjacentPairs: cfg.Train.ExcludeWhitespaceAdjacentPairs,
		OnMerge: func(m bpe.Merge) {
			logger.Debug("merge", "pair", m.Pair, "count", m.Count, "added", m.Added)
			if every > 0 && m.Added && m.VocabularyLen%every == 0 {
				logger.Info("training progress",
					"vocab_size", m.VocabularyLen,
					"sequence_len", m.SequenceLen,
					"last_pair", m.Pair,
					"last_count", m.Count,
				)
			}
		},
	})
	if err != nil {
		return bpe.Result{}, fmt.Errorf("train %q: %w", cfg.Paths.Corpus, err)
	}

	logger.Info("training finished",
		"iterations", res.Iterations,
		"vocab_size", res.Vocabulary.Len(),
		"sequence_len", len(res.Sequence),
		"elapsed", time.Since(start),
	)

	return res, nil
}
