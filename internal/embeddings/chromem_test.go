package embeddings

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubEmbedder returns canned vectors, one per input text.
type stubEmbedder struct {
	vectors [][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors, nil
}

func (s *stubEmbedder) Dimensions() int { return 3 }
func (s *stubEmbedder) Name() string    { return "stub" }

func TestToChromemFunc(t *testing.T) {
	want := []float32{0.1, 0.2, 0.3}
	fn := ToChromemFunc(&stubEmbedder{vectors: [][]float32{want}})

	got, err := fn(context.Background(), "some text")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestToChromemFuncPropagatesError(t *testing.T) {
	fn := ToChromemFunc(&stubEmbedder{err: errors.New("quota exceeded")})

	if _, err := fn(context.Background(), "text"); err == nil {
		t.Error("expected error from wrapped embedder")
	}
}

func TestToChromemFuncRejectsWrongVectorCount(t *testing.T) {
	fn := ToChromemFunc(&stubEmbedder{vectors: nil})

	_, err := fn(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error for empty embedding response")
	}
	if !strings.Contains(err.Error(), "0 vectors") {
		t.Errorf("got %v", err)
	}
}
