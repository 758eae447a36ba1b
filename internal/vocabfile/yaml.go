package vocabfile

import (
	"errors"
	"io"
	"strconv"

	"github.com/example/go-bpe-vocab/internal/bpe"
	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, v *bpe.Vocabulary) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for tok, n := range v.All() {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: tok},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

// readYAML decodes into a yaml.Node rather than a Go map so that the
// document's key order survives.
func readYAML(r io.Reader) (*bpe.Vocabulary, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return bpe.NewVocabulary(), nil
		}
		return nil, malformed("%v", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, malformed("expected a YAML mapping at line %d", root.Line)
	}

	v := bpe.NewVocabulary()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, malformed("line %d: token must be a non-empty scalar", key.Line)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, malformed("line %d: token %q: length must be a scalar", val.Line, key.Value)
		}
		n, err := parseLength(val.Value)
		if err != nil {
			return nil, malformed("line %d: token %q: %v", val.Line, key.Value, err)
		}
		if !v.Put(key.Value, n) {
			return nil, malformed("line %d: duplicate token %q", key.Line, key.Value)
		}
	}

	return v, nil
}
