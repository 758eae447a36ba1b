package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/example/go-bpe-vocab/internal/bench"
	"github.com/example/go-bpe-vocab/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		input      string
		runs       int
		format     string
		minRate    float64
		cpuProfile string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark segmentation latency and throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(input) == "" {
				return errors.New("--text is required for bench")
			}
			if runs < 1 {
				return errors.New("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return errors.New("--format must be 'table' or 'json'")
			}

			tok, err := tokenizer.NewVocabTokenizer(cfg.Paths.Vocab, cfg.Paths.VocabFormat)
			if err != nil {
				return err
			}

			if cpuProfile != "" {
				stop, err := startCPUProfile(cpuProfile)
				if err != nil {
					return err
				}
				defer stop()
			}

			results, err := bench.Run(cmd.Context(), input, runs, tok.Tokenize)
			if err != nil {
				return err
			}

			stats := bench.StatsOf(results)
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				if err := bench.FormatJSON(results, stats, out); err != nil {
					return err
				}
			default:
				bench.FormatTable(results, stats, out)
			}

			return bench.CheckThroughput(bench.MeanThroughput(results), minRate)
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to segment on each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of segmentation runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&minRate, "min-chars-per-sec", 0, "Exit non-zero if mean throughput falls below this value (0 = disabled)")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write a CPU profile of the runs to this file")

	return cmd
}

// startCPUProfile starts pprof CPU profiling into path and returns the
// function that stops it and closes the file.
func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			slog.Warn("close cpu profile", "path", path, "error", err)
		}
	}, nil
}
