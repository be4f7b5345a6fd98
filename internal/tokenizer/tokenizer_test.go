package tokenizer

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tk, err := New()
	if err != nil {
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}

	text := "The quick brown fox jumps over the lazy dog."
	ids := tk.Encode(text)
	if len(ids) == 0 {
		t.Fatal("Encode returned no tokens")
	}

	decoded := tk.Decode(ids)
	if decoded != text {
		t.Errorf("round trip mismatch: got %q, want %q", decoded, text)
	}
}

func TestCount(t *testing.T) {
	tk, err := New()
	if err != nil {
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}

	if got := tk.Count(""); got != 0 {
		t.Errorf("Count of empty string: got %d, want 0", got)
	}

	// A long repeated sentence must produce more tokens than a single word.
	long := strings.Repeat("semantic search over documents ", 50)
	if tk.Count(long) <= tk.Count("documents") {
		t.Error("longer text should produce more tokens")
	}
}

func TestDecodeSubsequenceReadable(t *testing.T) {
	tk, err := New()
	if err != nil {
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}

	text := "Chunking splits a document into overlapping windows of tokens."
	ids := tk.Encode(text)
	if len(ids) < 4 {
		t.Skipf("text tokenized to %d tokens, too short for subsequence check", len(ids))
	}

	// A mid-sequence window should still decode to a non-empty fragment of
	// the original text.
	window := tk.Decode(ids[1 : len(ids)-1])
	if strings.TrimSpace(window) == "" {
		t.Error("decoded window is empty")
	}
	if !strings.Contains(text, strings.TrimSpace(window)) {
		t.Errorf("decoded window %q is not a fragment of the original", window)
	}
}
