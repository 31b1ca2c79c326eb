package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/config"
)

// OpenRouterClient talks to an OpenAI-compatible endpoint. The default
// configuration routes DeepSeek through OpenRouter.
type OpenRouterClient struct {
	llm         llms.Model
	model       string
	temperature float64
	budget      *TokenBudget
	logger      *zap.Logger
}

func NewOpenRouterClient(cfg config.LLMConfig, logger *zap.Logger) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	client := &OpenRouterClient{
		llm:         model,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}

	if cfg.TokenBudget > 0 {
		budget, err := NewTokenBudget(cfg.TokenBudget)
		if err != nil {
			// The encoding is fetched over the network on first use, so an
			// offline start only loses the budget check.
			logger.Warn("token budget disabled", zap.Error(err))
		} else {
			client.budget = budget
		}
	}

	logger.Info("llm client initialized",
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.BaseURL))
	return client, nil
}

func (c *OpenRouterClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.budget != nil {
		if err := c.budget.Check(prompt); err != nil {
			return "", err
		}
	}

	completion, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", c.model)
	}

	return stripReasoning(completion.Choices[0].Content), nil
}

// stripReasoning drops the <think> block reasoning models such as
// deepseek-r1 prepend to their answers.
func stripReasoning(content string) string {
	const openingTag = "<think>"
	const closingTag = "</think>"

	startIdx := strings.Index(content, openingTag)
	if startIdx == -1 {
		return content
	}
	endIdx := strings.Index(content, closingTag)
	if endIdx == -1 {
		return content
	}
	return strings.TrimSpace(content[:startIdx] + content[endIdx+len(closingTag):])
}
