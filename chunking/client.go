package chunking

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Chunk is one piece of document text handed to the corrector. All offsets
// count runes, not bytes, since most of the corpus is CJK.
type Chunk struct {
	Text string
	// Start is the rune offset of Text within the source document, or -1
	// when the strategy rewrote the chunk and it cannot be located.
	Start int
	// Overlap is the number of leading runes of Text that were already
	// covered by the previous chunk.
	Overlap int
}

// Client splits document text into ordered chunks.
type Client interface {
	Split(text string) ([]Chunk, error)
}

// New builds the chunker named by strategy.
func New(strategy string, size, overlap int) (Client, error) {
	switch strategy {
	case "recursive":
		return NewRecursiveCharacterChunker(size, overlap), nil
	case "window":
		return NewWindowChunker(size, overlap)
	case "sentence":
		return NewSentenceChunker(size, overlap)
	default:
		return nil, fmt.Errorf("unknown chunker strategy %q", strategy)
	}
}

// locate recovers rune offsets and overlaps by scanning for each part in the
// source text. Parts are matched left to right, so repeated passages resolve
// to the earliest position after the previous match. A part the splitter
// rewrote gets Start -1.
func locate(source string, parts []string) []Chunk {
	chunks := make([]Chunk, 0, len(parts))
	searchFrom := 0
	prevEnd := -1

	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}

		start := -1
		if idx := strings.Index(source[searchFrom:], part); idx >= 0 {
			byteStart := searchFrom + idx
			start = utf8.RuneCountInString(source[:byteStart])
			_, size := utf8.DecodeRuneInString(source[byteStart:])
			searchFrom = byteStart + size
		}

		overlap := 0
		if start >= 0 && prevEnd > start {
			overlap = prevEnd - start
			if n := utf8.RuneCountInString(part); overlap > n {
				overlap = n
			}
		}
		if start >= 0 {
			prevEnd = start + utf8.RuneCountInString(part)
		}

		chunks = append(chunks, Chunk{Text: part, Start: start, Overlap: overlap})
	}
	return chunks
}
