package processor

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	topicRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	dateRe  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`)
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	digitRe = regexp.MustCompile(`\d`)
	urlRe   = regexp.MustCompile(`https?://[^\s]+`)
)

// englishStopWords is the fixed set used by the language heuristic.
var englishStopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

const (
	maxTopics = 10
	maxDates  = 5
	maxEmails = 5
)

// ExtractMetadata derives document-level and content-level metadata for the
// file at path with the given cleaned text. Extraction never fails hard: any
// error degrades to a minimal record so ingestion can continue.
func ExtractMetadata(path string, text string) Metadata {
	now := time.Now().Format(time.RFC3339)

	info, err := os.Stat(path)
	if err != nil {
		return Metadata{
			"filename":     StringValue(filepath.Base(path)),
			"file_path":    StringValue(path),
			"processed_at": StringValue(now),
			"error":        StringValue(err.Error()),
		}
	}

	modified := info.ModTime().Format(time.RFC3339)
	meta := Metadata{
		"filename":     StringValue(filepath.Base(path)),
		"file_path":    StringValue(path),
		"file_size":    IntValue(int(info.Size())),
		"file_hash":    StringValue(FileHash(path)),
		"file_type":    StringValue(strings.ToLower(filepath.Ext(path))),
		"created_at":   StringValue(modified),
		"modified_at":  StringValue(modified),
		"processed_at": StringValue(now),
		"text_length":  IntValue(len(text)),
		"word_count":   IntValue(len(strings.Fields(text))),
		"language":     StringValue(DetectLanguage(text)),
	}

	for k, v := range extractContentMetadata(text) {
		meta[k] = v
	}

	return meta
}

// FileHash returns the SHA-256 hex digest of the file's bytes, or "unknown"
// if the file cannot be read. Identical content always hashes identically,
// regardless of filename.
func FileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}
	return HashBytes(data)
}

// HashBytes returns the SHA-256 hex digest of the given bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DetectLanguage classifies text as "en" when more than 5 of the first 100
// lowercased words are common English stop words, else "unknown". This is a
// coarse heuristic, not a real language detector.
func DetectLanguage(text string) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) > 100 {
		words = words[:100]
	}

	count := 0
	for _, w := range words {
		if englishStopWords[w] {
			count++
		}
	}
	if count > 5 {
		return "en"
	}
	return "unknown"
}

// extractContentMetadata pulls content-derived signals: capitalized-word
// topics, dates, email addresses, and digit/URL presence flags.
func extractContentMetadata(text string) Metadata {
	seen := make(map[string]bool)
	var topics []string
	for _, w := range topicRe.FindAllString(text, -1) {
		if seen[w] {
			continue
		}
		seen[w] = true
		topics = append(topics, w)
		if len(topics) == maxTopics {
			break
		}
	}

	dates := dateRe.FindAllString(text, maxDates)
	emails := emailRe.FindAllString(text, maxEmails)

	return Metadata{
		"topics":      ListValue(topics),
		"dates":       ListValue(dates),
		"emails":      ListValue(emails),
		"has_numbers": BoolValue(digitRe.MatchString(text)),
		"has_urls":    BoolValue(urlRe.MatchString(text)),
	}
}
