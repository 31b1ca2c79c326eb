package repair

import "strings"

// Reassembly policies for joining corrected chunks.
const (
	// PolicyConcat joins chunks in order. The correction pass already saw
	// the rolling context, so no de-overlap is applied.
	PolicyConcat = "concat"
	// PolicySplice overwrites the overlapping tail of each chunk with the
	// head of the next, using the overlaps declared at chunking time.
	PolicySplice = "splice"
)

// Concat is the direct-concatenation policy.
func Concat(texts []string) string {
	return strings.Join(texts, "")
}

// Splice places chunk i at the previous end minus overlaps[i], replacing
// whatever the previous chunk wrote there. overlaps[0] is ignored. All
// positions are in runes.
func Splice(texts []string, overlaps []int) string {
	var buf []rune
	for i, text := range texts {
		start := len(buf)
		if i > 0 && i < len(overlaps) {
			start -= overlaps[i]
			if start < 0 {
				start = 0
			}
		}
		buf = append(buf[:start], []rune(text)...)
	}
	return string(buf)
}

// ReconcileLength forces text to exactly target runes, truncating or
// right-padding with spaces. This is cosmetic alignment with the raw pane,
// not a correctness mechanism. A target of zero leaves the text alone.
func ReconcileLength(text string, target int) string {
	if target <= 0 {
		return text
	}
	runes := []rune(text)
	switch {
	case len(runes) > target:
		return string(runes[:target])
	case len(runes) < target:
		return text + strings.Repeat(" ", target-len(runes))
	}
	return text
}
