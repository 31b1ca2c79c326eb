package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/ocr"
	"github.com/Nitish992/chinese-pdf-ocr-correction/rasterize"
)

// OCRExtractor renders every page and recognizes it. Pages are processed in
// order and joined with a newline, so page boundaries survive into the raw
// text.
type OCRExtractor struct {
	rasterizer rasterize.Rasterizer
	recognizer ocr.Recognizer
	logger     *zap.Logger
}

func NewOCRExtractor(rasterizer rasterize.Rasterizer, recognizer ocr.Recognizer, logger *zap.Logger) *OCRExtractor {
	return &OCRExtractor{
		rasterizer: rasterizer,
		recognizer: recognizer,
		logger:     logger,
	}
}

func (e *OCRExtractor) Extract(ctx context.Context, path string) (string, error) {
	pages, err := e.rasterizer.Rasterize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("rasterize document: %w", err)
	}

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		text, err := e.recognizer.Recognize(ctx, page.PNG)
		if err != nil {
			return "", fmt.Errorf("recognize page %d: %w", page.Number, err)
		}
		e.logger.Debug("page extracted",
			zap.Int("page", page.Number),
			zap.Int("runes", len([]rune(text))))
		texts = append(texts, text)
	}

	e.logger.Info("document extracted",
		zap.String("file", path),
		zap.Int("pages", len(pages)))
	return strings.Join(texts, "\n"), nil
}
