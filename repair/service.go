package repair

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/chunking"
	"github.com/Nitish992/chinese-pdf-ocr-correction/config"
	"github.com/Nitish992/chinese-pdf-ocr-correction/extract"
	"github.com/Nitish992/chinese-pdf-ocr-correction/llm"
)

// ErrNoText is returned when OCR produces nothing usable, typically a blank
// or image-only document in the wrong language.
var ErrNoText = errors.New("no text could be extracted from the document")

// Pipeline stages reported through ProgressFunc.
const (
	StageExtract  = "extract"
	StageCorrect  = "correct"
	StageFinalize = "finalize"
)

// ProgressFunc receives coarse progress while a document is processed.
// done and total are chunk counts and are zero outside the correct stage.
type ProgressFunc func(stage string, done, total int)

// Result holds both panes of the comparison view.
type Result struct {
	RawText       string `json:"raw_text"`
	CorrectedText string `json:"corrected_text"`
	Chunks        int    `json:"chunks"`
}

// Service runs the extract, correct and reassemble pipeline for one
// document at a time. Chunks are corrected strictly in order because each
// correction depends on the summary of the previous one.
type Service struct {
	extractor    extract.Extractor
	chunker      chunking.Client
	llm          llm.Client
	templates    llm.Templates
	policy       string
	contextLimit int
	logger       *zap.Logger
}

func NewService(extractor extract.Extractor, chunker chunking.Client, client llm.Client, cfg config.PipelineConfig, logger *zap.Logger) *Service {
	return &Service{
		extractor:    extractor,
		chunker:      chunker,
		llm:          client,
		templates:    llm.NewTemplates(),
		policy:       cfg.Reassembly,
		contextLimit: cfg.ContextLimit,
		logger:       logger,
	}
}

// ExtractText runs only the extraction half of the pipeline, so callers can
// capture and display the raw text before correction starts.
func (s *Service) ExtractText(ctx context.Context, path string) (string, error) {
	raw, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoText
	}
	return raw, nil
}

// CorrectText chunks raw text, corrects every chunk in order and reassembles
// the result. It returns the corrected text and the number of chunks.
// report may be nil.
func (s *Service) CorrectText(ctx context.Context, raw string, report ProgressFunc) (string, int, error) {
	if report == nil {
		report = func(string, int, int) {}
	}
	originalLen := len([]rune(raw))

	chunks, err := s.chunker.Split(raw)
	if err != nil {
		return "", 0, fmt.Errorf("split text: %w", err)
	}
	if len(chunks) == 0 {
		return "", 0, fmt.Errorf("chunker produced no chunks for %d runes of text", originalLen)
	}

	sess := newSession(s.llm, s.templates, s.contextLimit, s.logger)
	corrected := make([]string, 0, len(chunks))
	report(StageCorrect, 0, len(chunks))
	for i, chunk := range chunks {
		text, err := sess.correct(ctx, chunk.Text)
		if err != nil {
			return "", 0, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		corrected = append(corrected, text)
		report(StageCorrect, i+1, len(chunks))
	}

	report(StageFinalize, len(chunks), len(chunks))
	var assembled string
	switch s.policy {
	case PolicySplice:
		overlaps := make([]int, len(chunks))
		for i, chunk := range chunks {
			overlaps[i] = chunk.Overlap
		}
		assembled = Splice(corrected, overlaps)
	default:
		assembled = Concat(corrected)
	}

	if n := len([]rune(assembled)); n != originalLen {
		s.logger.Warn("reassembled length differs from original",
			zap.Int("assembled_runes", n),
			zap.Int("original_runes", originalLen))
	}
	final := ReconcileLength(assembled, originalLen)

	s.logger.Info("text corrected",
		zap.Int("chunks", len(chunks)),
		zap.Int("runes", originalLen))
	return final, len(chunks), nil
}

// ProcessDocument runs the full pipeline on the PDF at path. report may be
// nil. Any stage failure aborts the document.
func (s *Service) ProcessDocument(ctx context.Context, path string, report ProgressFunc) (*Result, error) {
	if report == nil {
		report = func(string, int, int) {}
	}

	report(StageExtract, 0, 0)
	raw, err := s.ExtractText(ctx, path)
	if err != nil {
		return nil, err
	}

	corrected, chunks, err := s.CorrectText(ctx, raw, report)
	if err != nil {
		return nil, err
	}

	return &Result{
		RawText:       raw,
		CorrectedText: corrected,
		Chunks:        chunks,
	}, nil
}
