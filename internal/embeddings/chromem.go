package embeddings

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// ToChromemFunc adapts an Embedder to the per-text callback chromem-go
// expects. Embedders here batch internally, so each callback invocation is a
// single-element batch.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, fmt.Errorf("%s embedding failed: %w", e.Name(), err)
		}
		if len(vectors) != 1 {
			return nil, fmt.Errorf("%s returned %d vectors for one input", e.Name(), len(vectors))
		}
		return vectors[0], nil
	}
}
