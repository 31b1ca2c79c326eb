package rasterize

import "context"

// Page is a single rendered PDF page.
type Page struct {
	// Number is the 1-based page number.
	Number int
	// PNG holds the rendered page image.
	PNG []byte
}

// Rasterizer renders every page of a PDF file into PNG images, in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]Page, error)
}
