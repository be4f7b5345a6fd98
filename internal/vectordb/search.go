package vectordb

import (
	"fmt"
	"strings"
)

const previewLength = 250

// FormatResults renders search results for terminal output.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No matching documents found."
	}

	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s (score: %.2f)\n", i+1, r.Source(), r.Score)
		fmt.Fprintf(&sb, "   %s\n", Preview(r.Content, previewLength))
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Preview truncates content to at most n characters, appending an ellipsis
// when it was cut. Truncation is rune-safe.
func Preview(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
