package repair

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/llm"
)

// session carries the rolling summary for one document. CorrectText creates
// a fresh session per call, so context can never leak from one document into
// another.
type session struct {
	llm          llm.Client
	templates    llm.Templates
	contextLimit int
	summary      string
	logger       *zap.Logger
}

func newSession(client llm.Client, templates llm.Templates, contextLimit int, logger *zap.Logger) *session {
	return &session{
		llm:          client,
		templates:    templates,
		contextLimit: contextLimit,
		logger:       logger,
	}
}

// correct rewrites one chunk under the current rolling context, then
// refreshes the context by summarizing the corrected text. The first chunk
// of a session sees an empty context.
func (s *session) correct(ctx context.Context, chunk string) (string, error) {
	prompt, err := s.templates.Correction(chunk, s.summary)
	if err != nil {
		return "", fmt.Errorf("render correction prompt: %w", err)
	}

	corrected, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("correct chunk: %w", err)
	}

	if err := s.summarize(ctx, corrected); err != nil {
		return "", err
	}
	return corrected, nil
}

func (s *session) summarize(ctx context.Context, corrected string) error {
	prompt, err := s.templates.Summary(corrected)
	if err != nil {
		return fmt.Errorf("render summary prompt: %w", err)
	}

	summary, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("summarize chunk: %w", err)
	}

	s.summary = truncateRunes(summary, s.contextLimit)
	s.logger.Debug("context updated", zap.Int("summary_runes", len([]rune(s.summary))))
	return nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
