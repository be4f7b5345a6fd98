package processor

import (
	"fmt"
	"strings"
)

// minChunkChars is the floor below which a candidate chunk is discarded.
// It keeps degenerate near-empty trailing fragments out of the index.
const minChunkChars = 50

// Codec encodes text to token IDs and decodes them back. Satisfied by
// *tokenizer.Tokenizer.
type Codec interface {
	Encode(text string) []int
	Decode(ids []int) string
}

// Chunker splits cleaned document text into token-bounded, overlapping
// chunks.
type Chunker struct {
	tk      Codec
	size    int
	overlap int
}

// NewChunker creates a chunker with the given window size and overlap, both
// in tokens. The overlap must be smaller than the size or the window could
// never advance.
func NewChunker(tk Codec, size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must be non-negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Chunker{tk: tk, size: size, overlap: overlap}, nil
}

// Split walks a window of c.size tokens across the text, decoding each
// window back to text and emitting it as a chunk when the trimmed content
// exceeds minChunkChars. Consecutive chunks overlap by c.overlap tokens.
// Each chunk's metadata is the document metadata plus chunk-local fields.
//
// The walk stops once the next window start would land within overlap tokens
// of the end of the sequence, so a short trailing remainder may be dropped
// rather than emitted as a fragment.
func (c *Chunker) Split(text string, docMeta Metadata) []Chunk {
	tokens := c.tk.Encode(text)

	var chunks []Chunk
	start := 0

	for start < len(tokens) {
		end := start + c.size
		if end > len(tokens) {
			end = len(tokens)
		}

		chunkText := strings.TrimSpace(c.tk.Decode(tokens[start:end]))
		if len(chunkText) > minChunkChars {
			meta := docMeta.Clone()
			meta["chunk_index"] = IntValue(len(chunks))
			meta["start_token"] = IntValue(start)
			meta["end_token"] = IntValue(end)
			meta["chunk_length"] = IntValue(len(chunkText))
			meta["chunk_word_count"] = IntValue(len(strings.Fields(chunkText)))

			chunks = append(chunks, Chunk{
				Content:    chunkText,
				Index:      len(chunks),
				StartToken: start,
				EndToken:   end,
				Metadata:   meta,
			})
		}

		start = end - c.overlap

		if start >= len(tokens)-c.overlap {
			break
		}
	}

	return chunks
}
