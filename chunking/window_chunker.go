package chunking

import "fmt"

// WindowChunker cuts fixed-size rune windows with a fixed overlap. Unlike
// the recursive splitter it never rewrites chunk text, so every chunk is an
// exact slice of the source and the windows cover it completely. That makes
// it the right partner for splice reassembly.
type WindowChunker struct {
	size    int
	overlap int
}

func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("window overlap must be in [0, size), got %d", overlap)
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

func (c *WindowChunker) Split(text string) ([]Chunk, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := c.size - c.overlap
	var chunks []Chunk
	for start := 0; ; start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		overlap := 0
		if start > 0 {
			overlap = c.overlap
		}
		chunks = append(chunks, Chunk{
			Text:    string(runes[start:end]),
			Start:   start,
			Overlap: overlap,
		})

		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
