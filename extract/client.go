package extract

import "context"

// Extractor produces the full raw text of a PDF document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}
