package rasterize

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// MuPDFRasterizer renders pages in-process through go-fitz. It avoids the
// pdftoppm subprocess round trip at the cost of linking mupdf.
type MuPDFRasterizer struct {
	dpi    int
	logger *zap.Logger
}

func NewMuPDFRasterizer(dpi int, logger *zap.Logger) *MuPDFRasterizer {
	return &MuPDFRasterizer{
		dpi:    dpi,
		logger: logger,
	}
}

func (m *MuPDFRasterizer) Rasterize(ctx context.Context, path string) ([]Page, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer doc.Close()

	pages := make([]Page, 0, doc.NumPage())
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(pageNum, float64(m.dpi))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", pageNum+1, err)
		}

		var buf bytes.Buffer
		encoder := png.Encoder{
			CompressionLevel: png.NoCompression, // keep full quality for OCR
		}
		if err := encoder.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", pageNum+1, err)
		}

		pages = append(pages, Page{Number: pageNum + 1, PNG: buf.Bytes()})
	}

	m.logger.Debug("rasterized document",
		zap.String("file", path),
		zap.Int("pages", len(pages)),
		zap.Int("dpi", m.dpi))
	return pages, nil
}
