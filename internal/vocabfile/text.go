package vocabfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/go-bpe-vocab/internal/bpe"
)

const (
	textSeparator = ": "
	maxLineBytes  = 16 << 20
)

func writeText(w io.Writer, v *bpe.Vocabulary) error {
	for tok, n := range v.All() {
		if _, err := fmt.Fprintf(w, "%s%s%d\n", encodeTextToken(tok), textSeparator, n); err != nil {
			return err
		}
	}

	return nil
}

// encodeTextToken quotes tokens that would not survive a line round trip.
func encodeTextToken(tok string) string {
	if needsQuoting(tok) {
		return strconv.Quote(tok)
	}

	return tok
}

func needsQuoting(tok string) bool {
	if tok == "" || !utf8.ValidString(tok) {
		return true
	}
	if strings.HasPrefix(tok, `"`) || strings.HasPrefix(tok, "#") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(tok)
	last, _ := utf8.DecodeLastRuneInString(tok)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return true
	}

	return strings.IndexFunc(tok, func(r rune) bool { return !unicode.IsPrint(r) && r != ' ' }) >= 0
}

func readText(r io.Reader) (*bpe.Vocabulary, error) {
	v := bpe.NewVocabulary()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tok, n, err := parseTextLine(line)
		if err != nil {
			return nil, malformed("line %d: %v", lineNo, err)
		}
		if !v.Put(tok, n) {
			return nil, malformed("line %d: duplicate token %q", lineNo, tok)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	return v, nil
}

func parseTextLine(line string) (string, int, error) {
	var tok, rest string
	if strings.HasPrefix(line, `"`) {
		quoted, err := strconv.QuotedPrefix(line)
		if err != nil {
			return "", 0, fmt.Errorf("bad quoted token: %w", err)
		}
		tok, err = strconv.Unquote(quoted)
		if err != nil {
			return "", 0, fmt.Errorf("bad quoted token: %w", err)
		}
		var ok bool
		rest, ok = strings.CutPrefix(line[len(quoted):], textSeparator)
		if !ok {
			return "", 0, fmt.Errorf("missing %q after quoted token", textSeparator)
		}
	} else {
		i := strings.LastIndex(line, textSeparator)
		if i < 0 {
			return "", 0, fmt.Errorf("missing %q separator", textSeparator)
		}
		tok, rest = line[:i], line[i+len(textSeparator):]
	}

	if tok == "" {
		return "", 0, fmt.Errorf("empty token")
	}
	n, err := parseLength(strings.TrimSpace(rest))
	if err != nil {
		return "", 0, err
	}

	return tok, n, nil
}

func parseLength(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("length %q is not an integer", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("length %d is not positive", n)
	}

	return n, nil
}
