package chunking

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// RecursiveCharacterChunker splits on paragraph, newline and CJK sentence
// boundaries first and falls back to hard cuts, so chunks stay under the
// configured size while breaking at natural seams where possible.
type RecursiveCharacterChunker struct {
	splitter textsplitter.RecursiveCharacter
}

func NewRecursiveCharacterChunker(size, overlap int) *RecursiveCharacterChunker {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", "。", "！", "？", "；", " ", ""}),
		textsplitter.WithKeepSeparator(true),
	)
	return &RecursiveCharacterChunker{splitter: splitter}
}

func (c *RecursiveCharacterChunker) Split(text string) ([]Chunk, error) {
	if text == "" {
		return nil, nil
	}

	parts, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}
	return locate(text, parts), nil
}
