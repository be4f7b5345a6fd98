package extract

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TXTExtractor reads plain text files. Files that are not valid UTF-8 are
// decoded as Latin-1, which accepts any byte sequence.
type TXTExtractor struct{}

func (e *TXTExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s as latin-1: %w", path, err)
	}
	return string(decoded), nil
}
