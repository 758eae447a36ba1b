package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"github.com/example/go-bpe-vocab/internal/config"
	"github.com/example/go-bpe-vocab/internal/doctor"
	"github.com/example/go-bpe-vocab/internal/text"
	"github.com/spf13/cobra"
)

// probeText is segmented with the configured vocabulary as a smoke test.
const probeText = "lowest newer widest"

func newDoctorCmd() *cobra.Command {
	var (
		requireVocab bool
		skipCorpus   bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check corpus, vocabulary and training settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result := doctor.Run(doctor.Config{
				CorpusPath: cfg.Paths.Corpus,
				CorpusOptions: text.CorpusOptions{
					LineEndings: cfg.Train.NormalizeLineEndings,
					NFC:         cfg.Train.NormalizeNFC,
				},
				SkipCorpus:   skipCorpus,
				VocabPath:    cfg.Paths.Vocab,
				VocabFormat:  cfg.Paths.VocabFormat,
				RequireVocab: requireVocab,
				Threshold:    cfg.Train.Threshold,
			}, out)

			checkSegmenter(cfg, &result, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().BoolVar(&requireVocab, "require-vocab", false, "Fail when the vocabulary file does not exist yet")
	cmd.Flags().BoolVar(&skipCorpus, "skip-corpus", false, "Skip the corpus check")

	return cmd
}

// checkSegmenter segments probeText with the configured vocabulary and
// verifies the tokens concatenate back to the input. It is skipped when the
// vocabulary cannot be loaded; doctor.Run already reports that.
func checkSegmenter(cfg config.Config, result *doctor.Result, w io.Writer) {
	if _, err := os.Stat(cfg.Paths.Vocab); err != nil {
		_, _ = fmt.Fprintf(w, "%s segmenter: skipped (no vocabulary)\n", doctor.PassMark)
		return
	}

	v, err := loadVocab(cfg.Paths.Vocab, cfg.Paths.VocabFormat)
	if err != nil {
		_, _ = fmt.Fprintf(w, "%s segmenter: skipped (vocabulary unreadable)\n", doctor.PassMark)
		return
	}

	tokens := bpe.Segment(probeText, v)
	if got := strings.Join(tokens, ""); got != probeText {
		result.AddFailure(fmt.Sprintf("segmenter: tokens rejoin to %q, want %q", got, probeText))
		_, _ = fmt.Fprintf(w, "%s segmenter: round trip failed\n", doctor.FailMark)
		return
	}

	_, _ = fmt.Fprintf(w, "%s segmenter: %d tokens for %q\n", doctor.PassMark, len(tokens), probeText)
}
