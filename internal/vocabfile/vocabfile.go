package vocabfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/go-bpe-vocab/internal/bpe"
)

// Write encodes v to w in the given format.
func Write(w io.Writer, v *bpe.Vocabulary, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, v)
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Read decodes a vocabulary from r.
func Read(r io.Reader, format Format) (*bpe.Vocabulary, error) {
	switch format {
	case FormatText:
		return readText(r)
	case FormatJSON:
		return readJSON(r)
	case FormatYAML:
		return readYAML(r)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Save writes v to path. The file is written next to its destination and
// renamed into place, so readers never observe a half-written vocabulary.
func Save(path string, v *bpe.Vocabulary, format Format) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create vocabulary dir: %w", err)
	}

	fh, err := os.CreateTemp(dir, ".vocab-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := fh.Name()

	bw := bufio.NewWriter(fh)
	if err := Write(bw, v, format); err != nil {
		_ = fh.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move temp file into place: %w", err)
	}

	return nil
}

// Load reads the vocabulary stored at path.
func Load(path string, format Format) (*bpe.Vocabulary, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer fh.Close()

	v, err := Read(bufio.NewReader(fh), format)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %q: %w", path, err)
	}

	return v, nil
}
