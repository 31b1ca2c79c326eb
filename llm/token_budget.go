package llm

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenBudget rejects prompts that exceed a token limit before they are sent
// upstream, so an oversized chunk fails fast instead of burning quota.
type TokenBudget struct {
	count func(prompt string) int
	limit int
}

func NewTokenBudget(limit int) (*TokenBudget, error) {
	tokenizer, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}
	return &TokenBudget{
		count: func(prompt string) int {
			return len(tokenizer.Encode(prompt, nil, nil))
		},
		limit: limit,
	}, nil
}

func (b *TokenBudget) Check(prompt string) error {
	if tokens := b.count(prompt); tokens > b.limit {
		return fmt.Errorf("prompt is %d tokens, budget is %d", tokens, b.limit)
	}
	return nil
}
