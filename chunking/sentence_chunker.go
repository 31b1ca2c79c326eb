package chunking

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceChunker packs whole sentences into chunks of at most size runes and
// seeds each new chunk with the trailing sentences of the previous one, up to
// the overlap budget. A single sentence longer than size becomes its own
// oversized chunk.
type SentenceChunker struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	size      int
	overlap   int
}

func NewSentenceChunker(size, overlap int) (*SentenceChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("sentence chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("sentence overlap must be in [0, size), got %d", overlap)
	}
	// The tokenizer needs trained storage; english ships it embedded.
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	return &SentenceChunker{
		tokenizer: tokenizer,
		size:      size,
		overlap:   overlap,
	}, nil
}

func (c *SentenceChunker) Split(text string) ([]Chunk, error) {
	sentenceObjs := c.tokenizer.Tokenize(text)
	if len(sentenceObjs) == 0 {
		return nil, nil
	}

	var parts []string
	var current []string
	var currentRunes int

	for _, sentenceObj := range sentenceObjs {
		sentence := sentenceObj.Text
		runes := len([]rune(sentence))

		// If adding this sentence would exceed the size, save the current
		// chunk and carry its trailing sentences into the next one until
		// the overlap budget is spent. The first sentence of a chunk is
		// never carried, so every chunk starts further into the source
		// than the one before it.
		if currentRunes+runes > c.size && len(current) > 0 {
			parts = append(parts, strings.Join(current, ""))

			keep := len(current)
			kept := 0
			for keep > 1 {
				tail := len([]rune(current[keep-1]))
				if kept+tail > c.overlap {
					break
				}
				kept += tail
				keep--
			}
			current = current[keep:]
			currentRunes = kept
		}
		current = append(current, sentence)
		currentRunes += runes
	}

	if len(current) > 0 {
		parts = append(parts, strings.Join(current, ""))
	}
	return locate(text, parts), nil
}
