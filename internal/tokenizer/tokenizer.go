// Package tokenizer wraps the cl100k_base BPE encoding used to measure and
// split document text on token boundaries.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

// Tokenizer encodes text to token IDs and decodes them back. Decoding the
// IDs produced by Encode reconstructs readable text, which is what chunk
// boundaries rely on; exact byte identity is not guaranteed by BPE.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New loads the cl100k_base encoding. The returned Tokenizer is safe for
// concurrent use and should be constructed once and shared.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", encodingName, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// Encode converts text into a sequence of token IDs.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode converts a sequence of token IDs back into text.
func (t *Tokenizer) Decode(ids []int) string {
	return t.enc.Decode(ids)
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.Encode(text))
}
