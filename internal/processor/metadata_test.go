package processor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileHash_Idempotent(t *testing.T) {
	dir := t.TempDir()
	content := []byte("identical content in two differently named files")

	pathA := filepath.Join(dir, "first.txt")
	pathB := filepath.Join(dir, "second.txt")
	if err := os.WriteFile(pathA, content, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pathB, content, 0644); err != nil {
		t.Fatal(err)
	}

	hashA := FileHash(pathA)
	hashB := FileHash(pathB)
	if hashA == "unknown" {
		t.Fatal("hash failed for readable file")
	}
	if hashA != hashB {
		t.Errorf("identical content hashed differently: %s vs %s", hashA, hashB)
	}

	if got := FileHash(filepath.Join(dir, "missing.txt")); got != "unknown" {
		t.Errorf("unreadable file: got %q, want unknown", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	english := "The cat sat on the mat and looked at the dog by the door of the house in the morning"
	if got := DetectLanguage(english); got != "en" {
		t.Errorf("english text: got %q, want en", got)
	}

	other := "uno dos tres cuatro cinco seis siete ocho nueve diez"
	if got := DetectLanguage(other); got != "unknown" {
		t.Errorf("non-english text: got %q, want unknown", got)
	}

	if got := DetectLanguage(""); got != "unknown" {
		t.Errorf("empty text: got %q, want unknown", got)
	}
}

func TestExtractMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	text := "Apple Banana Cherry released on 12/05/2023. Contact alice@example.com or visit https://example.com for 42 details."
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	meta := ExtractMetadata(path, text)

	required := []string{
		"filename", "file_path", "file_size", "file_hash", "file_type",
		"created_at", "modified_at", "processed_at", "text_length",
		"word_count", "language",
	}
	for _, key := range required {
		if _, ok := meta[key]; !ok {
			t.Errorf("missing required key %q", key)
		}
	}

	if meta["filename"].String() != "notes.txt" {
		t.Errorf("filename: got %q", meta["filename"].String())
	}
	if meta["file_type"].String() != ".txt" {
		t.Errorf("file_type: got %q", meta["file_type"].String())
	}

	topics := meta["topics"].List()
	if len(topics) == 0 {
		t.Error("no topics extracted")
	}
	for _, want := range []string{"Apple", "Banana", "Cherry"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("topic %q not extracted (got %v)", want, topics)
		}
	}

	if dates := meta["dates"].List(); len(dates) != 1 || dates[0] != "12/05/2023" {
		t.Errorf("dates: got %v", meta["dates"].List())
	}
	if emails := meta["emails"].List(); len(emails) != 1 || emails[0] != "alice@example.com" {
		t.Errorf("emails: got %v", meta["emails"].List())
	}
	if meta["has_numbers"].String() != "true" {
		t.Error("has_numbers should be true")
	}
	if meta["has_urls"].String() != "true" {
		t.Error("has_urls should be true")
	}
}

func TestExtractMetadata_Caps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caps.txt")

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("Topic")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString("word ")
		sb.WriteString("01/02/2020 ")
		sb.WriteString("user")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString("@mail.com ")
	}
	text := sb.String()
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	meta := ExtractMetadata(path, text)

	if got := len(meta["topics"].List()); got > 10 {
		t.Errorf("topics: got %d, cap is 10", got)
	}
	if got := len(meta["dates"].List()); got > 5 {
		t.Errorf("dates: got %d, cap is 5", got)
	}
	if got := len(meta["emails"].List()); got > 5 {
		t.Errorf("emails: got %d, cap is 5", got)
	}

	// Topics are de-duplicated.
	seen := make(map[string]bool)
	for _, topic := range meta["topics"].List() {
		if seen[topic] {
			t.Errorf("duplicate topic %q", topic)
		}
		seen[topic] = true
	}
}

func TestExtractMetadata_DegradesOnStatFailure(t *testing.T) {
	meta := ExtractMetadata("/nonexistent/path/ghost.txt", "some text")

	if meta["filename"].String() != "ghost.txt" {
		t.Errorf("filename: got %q", meta["filename"].String())
	}
	if _, ok := meta["error"]; !ok {
		t.Error("degraded record should carry an error key")
	}
	if _, ok := meta["processed_at"]; !ok {
		t.Error("degraded record should carry processed_at")
	}
	// The degraded record is minimal: no content signals.
	if _, ok := meta["topics"]; ok {
		t.Error("degraded record should not carry content metadata")
	}
}

func TestMetadataFlatten(t *testing.T) {
	meta := Metadata{
		"name":    StringValue("doc.pdf"),
		"size":    IntValue(2048),
		"ratio":   FloatValue(0.75),
		"flagged": BoolValue(true),
		"topics":  ListValue([]string{"Alpha", "Beta", "Gamma"}),
	}

	flat := meta.Flatten()

	if flat["name"] != "doc.pdf" {
		t.Errorf("name: %q", flat["name"])
	}
	if flat["size"] != "2048" {
		t.Errorf("size: %q", flat["size"])
	}
	if flat["ratio"] != "0.75" {
		t.Errorf("ratio: %q", flat["ratio"])
	}
	if flat["flagged"] != "true" {
		t.Errorf("flagged: %q", flat["flagged"])
	}
	if flat["topics"] != "Alpha, Beta, Gamma" {
		t.Errorf("topics: %q", flat["topics"])
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"whitespace collapse", "a  b\t\tc\n\nd", "a b c d"},
		{"repeated punctuation", "wait... what!!! really??", "wait. what! really?"},
		{"special characters stripped", "price: 100€ & 50$ (net)", "price: 100  50 (net)"},
		{"trimmed", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
