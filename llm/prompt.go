package llm

import (
	"github.com/tmc/langchaingo/prompts"
)

const correctionTemplate = "You are given a section of text from a scanned Chinese PDF, extracted " +
	"using OCR, with optional previous summary context to maintain coherence. This text may " +
	"include extraneous elements like page numbers, headers, or footers. Your task is to remove " +
	"any garbled text, correct typos, fill in any missing words, restore coherence to the text, " +
	"and exclude non-content elements (e.g., page numbers, headers, footers). Please return only " +
	"the corrected main content text, without any additional explanations, notes, or commentary. " +
	"Ensure the corrected text prioritizes maintaining the original length as closely as " +
	"possible, but make minor adjustments if necessary to ensure coherence and consistency with " +
	"the context. Text: {{.text_chunk}}, Context: {{.context}}"

const summaryTemplate = "You are given a section of corrected text from a Chinese story, previously " +
	"processed for OCR errors. Your task is to summarize this text into a concise 100-200 " +
	"character summary that captures the key narrative elements (e.g., main characters, plot " +
	"points, last sentence) for maintaining coherence in subsequent text. Please return only the " +
	"summary, without any additional explanations, notes, or commentary. Text: {{.text}}"

// Templates renders the two pipeline prompts. Correction rewrites one OCR
// chunk under the rolling context, Summary condenses corrected text into the
// context for the next chunk.
type Templates struct {
	correction prompts.PromptTemplate
	summary    prompts.PromptTemplate
}

func NewTemplates() Templates {
	return Templates{
		correction: prompts.NewPromptTemplate(correctionTemplate, []string{"text_chunk", "context"}),
		summary:    prompts.NewPromptTemplate(summaryTemplate, []string{"text"}),
	}
}

func (t Templates) Correction(textChunk, context string) (string, error) {
	return t.correction.Format(map[string]any{
		"text_chunk": textChunk,
		"context":    context,
	})
}

func (t Templates) Summary(text string) (string, error) {
	return t.summary.Format(map[string]any{
		"text": text,
	})
}
