package chunking

import (
	"testing"
)

// cjkText builds a string of n distinct CJK runes so offset assertions
// cannot be satisfied by an accidental early match.
func cjkText(n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = rune(0x4E00 + i)
	}
	return string(runes)
}

func sliceRunes(s string, start, end int) string {
	return string([]rune(s)[start:end])
}

func TestNewSelectsStrategy(t *testing.T) {
	tests := []struct {
		strategy string
		wantErr  bool
	}{
		{strategy: "recursive"},
		{strategy: "window"},
		{strategy: "sentence"},
		{strategy: "semantic", wantErr: true},
		{strategy: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			c, err := New(tt.strategy, 2000, 200)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%q) expected error", tt.strategy)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.strategy, err)
			}
			if c == nil {
				t.Fatalf("New(%q) returned nil client", tt.strategy)
			}
		})
	}
}

func TestLocateRecoversOffsets(t *testing.T) {
	source := cjkText(30)
	parts := []string{
		sliceRunes(source, 0, 12),
		sliceRunes(source, 10, 22),
		sliceRunes(source, 20, 30),
	}

	chunks := locate(source, parts)
	if len(chunks) != 3 {
		t.Fatalf("locate() returned %d chunks, want 3", len(chunks))
	}

	wantStarts := []int{0, 10, 20}
	wantOverlaps := []int{0, 2, 2}
	for i, c := range chunks {
		if c.Start != wantStarts[i] {
			t.Errorf("chunk %d Start = %d, want %d", i, c.Start, wantStarts[i])
		}
		if c.Overlap != wantOverlaps[i] {
			t.Errorf("chunk %d Overlap = %d, want %d", i, c.Overlap, wantOverlaps[i])
		}
	}
}

func TestLocateRewrittenPart(t *testing.T) {
	source := cjkText(20)
	chunks := locate(source, []string{sliceRunes(source, 0, 10), "не在文中"})

	if len(chunks) != 2 {
		t.Fatalf("locate() returned %d chunks, want 2", len(chunks))
	}
	if chunks[1].Start != -1 {
		t.Errorf("rewritten chunk Start = %d, want -1", chunks[1].Start)
	}
	if chunks[1].Overlap != 0 {
		t.Errorf("rewritten chunk Overlap = %d, want 0", chunks[1].Overlap)
	}
}

func TestLocateSkipsBlankParts(t *testing.T) {
	source := cjkText(10)
	chunks := locate(source, []string{sliceRunes(source, 0, 5), "  ", sliceRunes(source, 5, 10)})

	if len(chunks) != 2 {
		t.Fatalf("locate() returned %d chunks, want 2", len(chunks))
	}
}
