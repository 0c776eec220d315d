package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor pulls text content out of uploaded PDF documents using pdfcpu.
// pdfcpu works on files, so each extraction round-trips through a scratch
// directory that is cleaned up afterwards.
type Extractor struct {
	tempDir string
}

// NewExtractor creates a PDF text extractor with its scratch directory.
func NewExtractor() (*Extractor, error) {
	tempDir := filepath.Join(os.TempDir(), "tender-pdf")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	return &Extractor{tempDir: tempDir}, nil
}

// ExtractText returns the text of all pages in document order, separated by
// page markers so the analysis prompt can reference locations.
func (e *Extractor) ExtractText(pdfContent []byte) (string, error) {
	if len(pdfContent) == 0 {
		return "", fmt.Errorf("empty PDF content")
	}

	id := uuid.New().String()
	tempFile := filepath.Join(e.tempDir, id+".pdf")
	if err := os.WriteFile(tempFile, pdfContent, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	pageCount := pdfCtx.PageCount
	if pageCount == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	outDir := filepath.Join(e.tempDir, "pages_"+id)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	pageTexts := readPageFiles(outDir)
	if len(pageTexts) == 0 {
		return "", fmt.Errorf("no text content extracted from PDF")
	}

	nums := make([]int, 0, len(pageTexts))
	for n := range pageTexts {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var builder strings.Builder
	for i, n := range nums {
		if i > 0 {
			builder.WriteString(fmt.Sprintf("\n\n--- Página %d ---\n\n", n))
		}
		builder.WriteString(pageTexts[n])
	}
	return builder.String(), nil
}

// readPageFiles collects the per-page content files pdfcpu writes into
// outDir, keyed by page number.
func readPageFiles(outDir string) map[int]string {
	pageTexts := make(map[int]string)
	files, err := os.ReadDir(outDir)
	if err != nil {
		return pageTexts
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		if n, ok := pageNumber(file.Name()); ok {
			pageTexts[n] = string(content)
		}
	}
	return pageTexts
}

// pageNumber parses the page index out of a pdfcpu content file name
// ("<stem>_Content_page_3.txt" or "page_3.txt").
func pageNumber(name string) (int, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.LastIndex(base, "page_")
	if idx < 0 {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(base[idx:], "page_%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// IsPDF checks the magic header of an upload before any processing.
func IsPDF(content []byte) bool {
	return len(content) >= 5 && string(content[:5]) == "%PDF-"
}
