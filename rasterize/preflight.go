package rasterize

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Preflight rejects files the pipeline cannot process before any page is
// rendered. It returns the page count of a structurally valid PDF.
func Preflight(path string, maxPages int) (int, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return 0, fmt.Errorf("not a valid PDF: %w", err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	if pages == 0 {
		return 0, fmt.Errorf("document has no pages")
	}
	if maxPages > 0 && pages > maxPages {
		return 0, fmt.Errorf("document has %d pages, limit is %d", pages, maxPages)
	}
	return pages, nil
}
