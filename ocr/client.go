package ocr

import "context"

// Recognizer extracts text from a rendered page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
