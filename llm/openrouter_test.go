package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/config"
)

type fakeModel struct {
	resp  *llms.ContentResponse
	err   error
	calls int
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.resp.Choices[0].Content, nil
}

func newTestClient(model llms.Model) *OpenRouterClient {
	return &OpenRouterClient{
		llm:    model,
		model:  "test-model",
		logger: zap.NewNop(),
	}
}

func TestGenerateReturnsContent(t *testing.T) {
	client := newTestClient(&fakeModel{
		resp: &llms.ContentResponse{
			Choices: []*llms.ContentChoice{{Content: "修正后的文本"}},
		},
	})

	got, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "修正后的文本" {
		t.Errorf("Generate() = %q, want 修正后的文本", got)
	}
}

func TestGenerateStripsReasoning(t *testing.T) {
	client := newTestClient(&fakeModel{
		resp: &llms.ContentResponse{
			Choices: []*llms.ContentChoice{{
				Content: "<think>先分析错别字的位置。</think>\n修正后的文本",
			}},
		},
	})

	got, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "修正后的文本" {
		t.Errorf("Generate() = %q, want reasoning stripped", got)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	client := newTestClient(&fakeModel{resp: &llms.ContentResponse{}})

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("Generate() expected error for empty choices")
	}
}

func TestGenerateError(t *testing.T) {
	client := newTestClient(&fakeModel{err: errors.New("rate limited")})

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("Generate() expected error")
	}
}

func TestNewOpenRouterClientRequiresKey(t *testing.T) {
	cfg := config.LLMConfig{
		Model:   config.DefaultModel,
		BaseURL: config.DefaultBaseURL,
	}
	if _, err := NewOpenRouterClient(cfg, zap.NewNop()); err == nil {
		t.Fatal("NewOpenRouterClient() expected error for empty api key")
	}
}

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no reasoning",
			content: "修正后的文本",
			want:    "修正后的文本",
		},
		{
			name:    "reasoning block",
			content: "<think>推理过程</think>修正后的文本",
			want:    "修正后的文本",
		},
		{
			name:    "unterminated block",
			content: "<think>推理过程 修正后的文本",
			want:    "<think>推理过程 修正后的文本",
		},
		{
			name:    "empty",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripReasoning(tt.content); got != tt.want {
				t.Errorf("stripReasoning(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
