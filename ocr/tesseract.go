package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// TesseractRecognizer runs tesseract in-process through gosseract.
type TesseractRecognizer struct {
	language string
	logger   *zap.Logger
}

func NewTesseractRecognizer(language string, logger *zap.Logger) *TesseractRecognizer {
	return &TesseractRecognizer{
		language: language,
		logger:   logger,
	}
}

// Probe verifies the configured traineddata is installed. Scanned Chinese
// documents silently OCR into garbage under the default "eng" model, so a
// missing language pack must fail startup.
func (t *TesseractRecognizer) Probe() error {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("list tesseract languages: %w", err)
	}
	for _, lang := range langs {
		if lang == t.language {
			return nil
		}
	}
	return fmt.Errorf("tesseract language %q not installed (available: %s)",
		t.language, strings.Join(langs, ", "))
}

func (t *TesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("set language %q: %w", t.language, err)
	}

	// Tune Tesseract for dense book pages.
	client.SetVariable("tessedit_ocr_engine_mode", "1")  // LSTM only
	client.SetVariable("tessedit_pageseg_mode", "3")     // Fully automatic page segmentation
	client.SetVariable("preserve_interword_spaces", "1") // Preserve spacing

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	t.logger.Debug("page recognized", zap.Int("runes", len([]rune(text))))
	return text, nil
}
