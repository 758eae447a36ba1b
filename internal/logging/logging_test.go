package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewHandler("info", "json", &buf))
	logger.Info("merged", "pair", "ab", "count", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if rec["msg"] != "merged" || rec["pair"] != "ab" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewHandler("info", "text", &buf))
	logger.Info("merged", "pair", "ab")

	if !strings.Contains(buf.String(), "msg=merged") || !strings.Contains(buf.String(), "pair=ab") {
		t.Errorf("unexpected text output: %q", buf.String())
	}
}

func TestNewHandler_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewHandler("warn", "json", &buf))
	logger.Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}

	logger.Warn("shown")

	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestNewHandler_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewHandler("not-a-level", "json", &buf))
	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestSetup_InstallsDefault(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	var buf bytes.Buffer

	logger := Setup("debug", "json", &buf)
	if slog.Default() != logger {
		t.Fatal("Setup did not install the returned logger as default")
	}

	slog.Debug("probe")

	if !strings.Contains(buf.String(), "probe") {
		t.Errorf("default logger did not write: %q", buf.String())
	}
}
