package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// TextLayerExtractor reads the embedded text layer of a PDF. Scanned
// documents usually have none, but digitally produced PDFs do, and for
// those the OCR round trip is wasted work.
type TextLayerExtractor struct{}

func NewTextLayerExtractor() *TextLayerExtractor {
	return &TextLayerExtractor{}
}

func (e *TextLayerExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text layer: %w", err)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read text layer: %w", err)
	}

	return strings.TrimSpace(string(content)), nil
}

// FallbackExtractor tries the text layer first and falls back to OCR when
// the layer is missing or too thin to be the real document text.
type FallbackExtractor struct {
	textLayer Extractor
	ocr       Extractor
	minRunes  int
	logger    *zap.Logger
}

func NewFallbackExtractor(textLayer, ocr Extractor, minRunes int, logger *zap.Logger) *FallbackExtractor {
	return &FallbackExtractor{
		textLayer: textLayer,
		ocr:       ocr,
		minRunes:  minRunes,
		logger:    logger,
	}
}

func (e *FallbackExtractor) Extract(ctx context.Context, path string) (string, error) {
	text, err := e.textLayer.Extract(ctx, path)
	if err == nil && len([]rune(text)) >= e.minRunes {
		e.logger.Info("using embedded text layer",
			zap.String("file", path),
			zap.Int("runes", len([]rune(text))))
		return text, nil
	}
	if err != nil {
		e.logger.Debug("text layer unavailable, falling back to OCR",
			zap.String("file", path),
			zap.Error(err))
	} else {
		e.logger.Debug("text layer too thin, falling back to OCR",
			zap.String("file", path),
			zap.Int("runes", len([]rune(text))),
			zap.Int("min_runes", e.minRunes))
	}
	return e.ocr.Extract(ctx, path)
}
