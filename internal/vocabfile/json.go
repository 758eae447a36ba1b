package vocabfile

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/example/go-bpe-vocab/internal/bpe"
)

func writeJSON(w io.Writer, v *bpe.Vocabulary) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)

	return err
}

// readJSON walks the top-level object token by token so that key order is
// kept and duplicate keys are reported instead of silently overwritten.
func readJSON(r io.Reader) (*bpe.Vocabulary, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	open, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return bpe.NewVocabulary(), nil
	}
	if err != nil {
		return nil, malformed("%v", err)
	}
	if d, ok := open.(json.Delim); !ok || d != '{' {
		return nil, malformed("expected a JSON object, got %v", open)
	}

	v := bpe.NewVocabulary()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, malformed("%v", err)
		}
		key, _ := keyTok.(string)
		if key == "" {
			return nil, malformed("empty token")
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, malformed("token %q: %v", key, err)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, malformed("token %q: length must be a number, got %v", key, valTok)
		}
		n, err := parseLength(num.String())
		if err != nil {
			return nil, malformed("token %q: %v", key, err)
		}
		if !v.Put(key, n) {
			return nil, malformed("duplicate token %q", key)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed("%v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("trailing data after object")
	}

	return v, nil
}
