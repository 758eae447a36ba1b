// Package vocabfile reads and writes learned vocabularies.
//
// Three encodings are supported: line-oriented text ("token: length" per
// line), a JSON object and a YAML mapping. Writers emit entries in the
// vocabulary's insertion order. Readers either return a complete vocabulary
// or an error wrapping ErrMalformedVocabulary, never a partial result.
package vocabfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a vocabulary encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrMalformedVocabulary is wrapped by every parse failure.
	ErrMalformedVocabulary = errors.New("malformed vocabulary data")

	// ErrUnknownFormat is returned for an unrecognised format name.
	ErrUnknownFormat = errors.New("unknown vocabulary format")
)

// NormalizeFormat canonicalises a user-supplied format name. An empty name
// returns an empty Format, meaning "detect from the file name".
func NormalizeFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q (expected %s|%s|%s)", ErrUnknownFormat, raw, FormatText, FormatJSON, FormatYAML)
	}
}

// DetectFormat picks a format from the file extension, defaulting to text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Resolve returns the normalised raw format, or the format detected from
// path when raw is empty.
func Resolve(path, raw string) (Format, error) {
	f, err := NormalizeFormat(raw)
	if err != nil {
		return "", err
	}
	if f == "" {
		f = DetectFormat(path)
	}

	return f, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedVocabulary, fmt.Sprintf(format, args...))
}
