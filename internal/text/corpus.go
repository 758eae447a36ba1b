package text

import (
	"fmt"
	"io"
	"os"
)

// ReadCorpus reads all of r and normalizes it with opts.
func ReadCorpus(r io.Reader, opts CorpusOptions) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read corpus: %w", err)
	}

	return NormalizeCorpus(string(data), opts)
}

// LoadCorpus reads the corpus file at path.
func LoadCorpus(path string, opts CorpusOptions) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open corpus: %w", err)
	}
	defer fh.Close()

	corpus, err := ReadCorpus(fh, opts)
	if err != nil {
		return "", fmt.Errorf("corpus %q: %w", path, err)
	}

	return corpus, nil
}
