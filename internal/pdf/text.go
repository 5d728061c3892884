package pdf

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/slideforge/pdf2pptx/internal/domain"
)

// ExtractTextByPage returns the plain text of each page in order, one entry
// per page. Each entry is whitespace-trimmed with lines joined by newlines;
// pages without text yield an empty string.
func ExtractTextByPage(path string) ([]string, error) {
	if err := ValidatePDFPath(path); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.ConversionError("failed to open PDF", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, domain.ExtractionError(fmt.Sprintf("failed to extract text from page %d", i+1), err)
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return pages, nil
}
