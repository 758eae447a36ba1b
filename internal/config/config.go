package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrThresholdRequired is returned by RequireThreshold when no training
// threshold was configured.
var ErrThresholdRequired = errors.New("training threshold is required (set --threshold, train.threshold or BPEVOCAB_TRAIN_THRESHOLD)")

type Config struct {
	Paths     PathsConfig  `mapstructure:"paths"`
	Train     TrainConfig  `mapstructure:"train"`
	Server    ServerConfig `mapstructure:"server"`
	LogLevel  string       `mapstructure:"log_level"`
	LogFormat string       `mapstructure:"log_format"`
}

// PathsConfig locates the corpus and the vocabulary. VocabFormat is
// text|json|yaml; empty means detect from the vocabulary extension.
type PathsConfig struct {
	Corpus      string `mapstructure:"corpus"`
	Vocab       string `mapstructure:"vocab"`
	VocabFormat string `mapstructure:"vocab_format"`
}

type TrainConfig struct {
	// Threshold has no meaningful default; 0 means unset.
	Threshold                      int  `mapstructure:"threshold"`
	ExcludeWhitespaceAdjacentPairs bool `mapstructure:"exclude_whitespace_adjacent_pairs"`
	ProgressEvery                  int  `mapstructure:"progress_every"`
	NormalizeNFC                   bool `mapstructure:"normalize_nfc"`
	NormalizeLineEndings           bool `mapstructure:"normalize_line_endings"`
}

// ServerConfig configures `bpevocab serve`. Timeouts are in seconds.
type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"paths.corpus":                            "corpus",
	"paths.vocab":                             "vocab",
	"paths.vocab_format":                      "vocab-format",
	"train.threshold":                         "threshold",
	"train.exclude_whitespace_adjacent_pairs": "exclude-whitespace-pairs",
	"train.progress_every":                    "progress-every",
	"train.normalize_nfc":                     "nfc",
	"train.normalize_line_endings":            "normalize-line-endings",
	"server.listen_addr":                      "server-listen-addr",
	"server.workers":                          "server-workers",
	"server.max_text_bytes":                   "server-max-text-bytes",
	"server.request_timeout":                  "server-request-timeout",
	"server.shutdown_timeout":                 "server-shutdown-timeout",
	"log_level":                               "log-level",
	"log_format":                              "log-format",
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			Corpus:      "data/corpus.txt",
			Vocab:       "data/vocab.txt",
			VocabFormat: "",
		},
		Train: TrainConfig{
			Threshold:                      0,
			ExcludeWhitespaceAdjacentPairs: false,
			ProgressEvery:                  10,
			NormalizeNFC:                   false,
			NormalizeLineEndings:           false,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			MaxTextBytes:    64 * 1024,
			RequestTimeout:  10,
			ShutdownTimeout: 30,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("corpus", defaults.Paths.Corpus, "Path to the training corpus")
	fs.String("vocab", defaults.Paths.Vocab, "Path to the vocabulary file")
	fs.String("vocab-format", defaults.Paths.VocabFormat, "Vocabulary file format: text|json|yaml (default: from extension)")
	fs.Int("threshold", defaults.Train.Threshold, "Minimum pair count for a merge; training stops below it (required for train)")
	fs.Bool(
		"exclude-whitespace-pairs",
		defaults.Train.ExcludeWhitespaceAdjacentPairs,
		"Skip candidate pairs whose second token begins or ends with whitespace",
	)
	fs.Int("progress-every", defaults.Train.ProgressEvery, "Log training progress every N vocabulary entries (0 = off)")
	fs.Bool("nfc", defaults.Train.NormalizeNFC, "Normalize the corpus to Unicode NFC before training")
	fs.Bool("normalize-line-endings", defaults.Train.NormalizeLineEndings, "Convert CRLF/CR to LF before training")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent segmentation requests (0 = unlimited)")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Max text size accepted by POST /segment")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
	fs.String("log-format", defaults.LogFormat, "Log format: json|text")
}

// Load merges, from lowest to highest precedence: defaults, the config file,
// BPEVOCAB_* environment variables and explicitly set flags.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("BPEVOCAB")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("bpevocab")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// RequireThreshold returns the configured training threshold, or
// ErrThresholdRequired when it is unset or below 1.
func (c Config) RequireThreshold() (int, error) {
	if c.Train.Threshold < 1 {
		return 0, ErrThresholdRequired
	}

	return c.Train.Threshold, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.corpus", c.Paths.Corpus)
	v.SetDefault("paths.vocab", c.Paths.Vocab)
	v.SetDefault("paths.vocab_format", c.Paths.VocabFormat)
	v.SetDefault("train.threshold", c.Train.Threshold)
	v.SetDefault("train.exclude_whitespace_adjacent_pairs", c.Train.ExcludeWhitespaceAdjacentPairs)
	v.SetDefault("train.progress_every", c.Train.ProgressEvery)
	v.SetDefault("train.normalize_nfc", c.Train.NormalizeNFC)
	v.SetDefault("train.normalize_line_endings", c.Train.NormalizeLineEndings)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("log_format", c.LogFormat)
}

// bindFlags binds each config key to its flag. Flags missing from fs are
// skipped so subcommands may register a subset.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	return nil
}
