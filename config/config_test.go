package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pipeline.ChunkSize != 2000 {
		t.Errorf("ChunkSize = %d, want 2000", cfg.Pipeline.ChunkSize)
	}
	if cfg.Pipeline.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want 200", cfg.Pipeline.ChunkOverlap)
	}
	if cfg.Pipeline.ContextLimit != 200 {
		t.Errorf("ContextLimit = %d, want 200", cfg.Pipeline.ContextLimit)
	}
	if cfg.OCR.Language != "chi_sim" {
		t.Errorf("Language = %q, want chi_sim", cfg.OCR.Language)
	}
	if cfg.LLM.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.LLM.Model, DefaultModel)
	}
	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want test-key", cfg.LLM.APIKey)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	_, err := Load("")
	if err == nil {
		t.Fatal("Load() expected error for missing OPENROUTER_API_KEY")
	}
	if !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
pipeline:
  chunk_size: 1000
  chunk_overlap: 100
  chunker: window
  reassembly: splice
ocr:
  language: chi_tra
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pipeline.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.Pipeline.ChunkSize)
	}
	if cfg.Pipeline.Chunker != "window" {
		t.Errorf("Chunker = %q, want window", cfg.Pipeline.Chunker)
	}
	if cfg.Pipeline.Reassembly != "splice" {
		t.Errorf("Reassembly = %q, want splice", cfg.Pipeline.Reassembly)
	}
	if cfg.OCR.Language != "chi_tra" {
		t.Errorf("Language = %q, want chi_tra", cfg.OCR.Language)
	}
	// Untouched fields keep their defaults.
	if cfg.Pipeline.ContextLimit != 200 {
		t.Errorf("ContextLimit = %d, want 200", cfg.Pipeline.ContextLimit)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("LLM_MODEL", "deepseek/deepseek-chat")
	t.Setenv("OPENROUTER_BASE_URL", "https://proxy.internal/api/v1")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "llm:\n  model: some/other-model\n  base_url: https://file.example/api/v1\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Model != "deepseek/deepseek-chat" {
		t.Errorf("Model = %q, want env override deepseek/deepseek-chat", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "https://proxy.internal/api/v1" {
		t.Errorf("BaseURL = %q, want env override https://proxy.internal/api/v1", cfg.LLM.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "zero chunk size",
			mutate: func(c *Config) { c.Pipeline.ChunkSize = 0 },
		},
		{
			name:   "overlap equal to chunk size",
			mutate: func(c *Config) { c.Pipeline.ChunkOverlap = c.Pipeline.ChunkSize },
		},
		{
			name:   "negative overlap",
			mutate: func(c *Config) { c.Pipeline.ChunkOverlap = -1 },
		},
		{
			name:   "unknown chunker",
			mutate: func(c *Config) { c.Pipeline.Chunker = "semantic" },
		},
		{
			name:   "unknown reassembly",
			mutate: func(c *Config) { c.Pipeline.Reassembly = "merge" },
		},
		{
			name:   "unknown engine",
			mutate: func(c *Config) { c.OCR.Engine = "ghostscript" },
		},
		{
			name:   "zero dpi",
			mutate: func(c *Config) { c.OCR.DPI = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.LLM.APIKey = "test-key"
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() expected error for %s", tt.name)
			}
		})
	}
}
