// Package bench provides benchmarking primitives for the bpevocab bench command.
package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
)

// ErrNoRuns is returned by Run when asked for fewer than one run.
var ErrNoRuns = errors.New("bench: runs must be at least 1")

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and segmentation metadata for a single run.
type RunResult struct {
	Index    int
	Cold     bool // true for the first run
	Duration time.Duration
	Chars    int
	Tokens   int
}

// CharsPerSec is the segmentation throughput of this run.
func (r RunResult) CharsPerSec() float64 {
	return Throughput(r.Chars, r.Duration)
}

// Ratio is characters per produced token.
func (r RunResult) Ratio() float64 {
	return CompressionRatio(r.Chars, r.Tokens)
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		mn = min(mn, d)
		mx = max(mx, d)
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// StatsOf collects the durations of runs and aggregates them.
func StatsOf(runs []RunResult) Stats {
	durations := make([]time.Duration, len(runs))
	for i, r := range runs {
		durations[i] = r.Duration
	}
	return ComputeStats(durations)
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// Throughput returns chars / seconds, or 0 for a non-positive duration.
func Throughput(chars int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(chars) / d.Seconds()
}

// CompressionRatio returns chars / tokens, or 0 when no tokens were produced.
func CompressionRatio(chars, tokens int) float64 {
	if tokens <= 0 {
		return 0
	}
	return float64(chars) / float64(tokens)
}

// MeanThroughput is the total characters over the total time of all runs.
func MeanThroughput(runs []RunResult) float64 {
	var (
		chars int
		total time.Duration
	)
	for _, r := range runs {
		chars += r.Chars
		total += r.Duration
	}
	return Throughput(chars, total)
}

// ---------------------------------------------------------------------------
// Runner
// ---------------------------------------------------------------------------

// SegmentFunc splits text into tokens.
type SegmentFunc func(text string) ([]string, error)

// Run segments text runs times and records each run. The context is checked
// between runs.
func Run(ctx context.Context, text string, runs int, segment SegmentFunc) ([]RunResult, error) {
	if runs < 1 {
		return nil, ErrNoRuns
	}

	chars := utf8.RuneCountInString(text)
	results := make([]RunResult, 0, runs)

	for i := range runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		tokens, err := segment(text)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}

		results = append(results, RunResult{
			Index:    i,
			Cold:     i == 0,
			Duration: time.Since(start),
			Chars:    chars,
			Tokens:   len(tokens),
		})
	}

	return results, nil
}

// ---------------------------------------------------------------------------
// Throughput gate
// ---------------------------------------------------------------------------

// CheckThroughput returns an error if meanCharsPerSec < minimum.
// A minimum of 0 disables the gate.
func CheckThroughput(meanCharsPerSec, minimum float64) error {
	if minimum <= 0 {
		return nil
	}
	if meanCharsPerSec < minimum {
		return fmt.Errorf("mean throughput %.1f chars/s below minimum %.1f", meanCharsPerSec, minimum)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"RUN", "COLD", "MS", "CHARS", "TOKENS", "CHARS/S", "RATIO"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		table.Append([]string{
			strconv.Itoa(r.Index + 1),
			cold,
			formatMS(r.Duration),
			strconv.Itoa(r.Chars),
			strconv.Itoa(r.Tokens),
			strconv.FormatFloat(r.CharsPerSec(), 'f', 1, 64),
			strconv.FormatFloat(r.Ratio(), 'f', 3, 64),
		})
	}

	table.Append([]string{"min", "", formatMS(stats.Min), "", "", "", ""})
	table.Append([]string{"mean", "", formatMS(stats.Mean), "", "", "", ""})
	table.Append([]string{"max", "", formatMS(stats.Max), "", "", "", ""})
	table.Render()
}

func formatMS(d time.Duration) string {
	return strconv.FormatFloat(msOf(d), 'f', 3, 64)
}

func msOf(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index       int     `json:"index"`
	Cold        bool    `json:"cold"`
	DurationMS  float64 `json:"duration_ms"`
	Chars       int     `json:"chars"`
	Tokens      int     `json:"tokens"`
	CharsPerSec float64 `json:"chars_per_sec"`
	Ratio       float64 `json:"ratio"`
}

type jsonStats struct {
	MinMS       float64 `json:"min_ms"`
	MeanMS      float64 `json:"mean_ms"`
	MaxMS       float64 `json:"max_ms"`
	CharsPerSec float64 `json:"chars_per_sec"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) error {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:       msOf(stats.Min),
			MeanMS:      msOf(stats.Mean),
			MaxMS:       msOf(stats.Max),
			CharsPerSec: MeanThroughput(runs),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:       r.Index,
			Cold:        r.Cold,
			DurationMS:  msOf(r.Duration),
			Chars:       r.Chars,
			Tokens:      r.Tokens,
			CharsPerSec: r.CharsPerSec(),
			Ratio:       r.Ratio(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}
