package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor extracts text from PDF files using pdfcpu.
type PDFExtractor struct{}

// Extract pulls the text content of every page, concatenated in page order.
func (e *PDFExtractor) Extract(path string) (string, error) {
	conf := model.NewDefaultConfiguration()

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", path, err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp("", "kbsearch-pdf-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("extracting PDF content from %s: %w", path, err)
	}

	// pdfcpu writes one content file per page; collect them keyed by page
	// number so pages come back in order regardless of directory listing.
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("reading extracted content: %w", err)
	}

	pageTexts := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(entry.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
			continue
		}
		if _, err := fmt.Sscanf(entry.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		}
	}

	pageNums := make([]int, 0, len(pageTexts))
	for n := range pageTexts {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	var sb strings.Builder
	for _, n := range pageNums {
		sb.WriteString(pageTexts[n])
		sb.WriteString("\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" && pageCount > 0 {
		// Scanned or image-only PDFs extract no text; surface that rather
		// than indexing an empty document.
		return "", nil
	}
	return text, nil
}
