package processor

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	specialRe    = regexp.MustCompile(`[^\w\s.,!?;:\-()]`)
)

// CleanText normalizes document text before chunking: collapses whitespace,
// strips special characters while keeping punctuation, and collapses runs of
// the same punctuation mark.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = specialRe.ReplaceAllString(text, "")
	text = collapsePunctuation(text)
	return strings.TrimSpace(text)
}

// collapsePunctuation reduces consecutive identical punctuation marks to a
// single occurrence ("!!!" -> "!").
func collapsePunctuation(text string) string {
	const punct = ".,!?;:"
	var sb strings.Builder
	sb.Grow(len(text))

	var prev rune = -1
	for _, r := range text {
		if r == prev && strings.ContainsRune(punct, r) {
			continue
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}
