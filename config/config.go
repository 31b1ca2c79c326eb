package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// Default model served through OpenRouter. Free tier, good enough for
	// batch correction of OCR output.
	DefaultModel   = "deepseek/deepseek-r1:free"
	DefaultBaseURL = "https://openrouter.ai/api/v1"
)

type ServerConfig struct {
	Port      int    `yaml:"port"`
	UploadDir string `yaml:"upload_dir"`
}

type OCRConfig struct {
	// Language is a tesseract traineddata name, e.g. "chi_sim".
	Language string `yaml:"language"`
	DPI      int    `yaml:"dpi"`
	// Engine selects the rasterizer backend: "poppler" or "mupdf".
	Engine string `yaml:"engine"`
	// TextLayerMin is the minimum number of runes the embedded text layer
	// must yield before OCR is skipped. 0 disables the fast path.
	TextLayerMin int `yaml:"text_layer_min"`
}

type PipelineConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	// ContextLimit caps the rolling summary carried between chunks, in runes.
	ContextLimit int `yaml:"context_limit"`
	// Chunker selects the splitting strategy: "recursive", "window" or "sentence".
	Chunker string `yaml:"chunker"`
	// Reassembly selects how corrected chunks are joined: "concat" or "splice".
	Reassembly string `yaml:"reassembly"`
}

type LLMConfig struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	// TokenBudget rejects prompts above this many tokens before sending.
	// 0 disables the check.
	TokenBudget int    `yaml:"token_budget"`
	APIKey      string `yaml:"-"`
}

type RedisConfig struct {
	// Addr enables the redis progress tracker when set. Empty keeps
	// progress in memory.
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OCR      OCRConfig      `yaml:"ocr"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	LLM      LLMConfig      `yaml:"llm"`
	Redis    RedisConfig    `yaml:"redis"`
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order. Path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      8080,
			UploadDir: os.TempDir(),
		},
		OCR: OCRConfig{
			Language: "chi_sim",
			DPI:      300,
			Engine:   "poppler",
		},
		Pipeline: PipelineConfig{
			ChunkSize:    2000,
			ChunkOverlap: 200,
			ContextLimit: 200,
			Chunker:      "recursive",
			Reassembly:   "concat",
		},
		LLM: LLMConfig{
			Model:       DefaultModel,
			BaseURL:     DefaultBaseURL,
			Temperature: 0,
		},
	}
}

func (c *Config) applyEnv() error {
	c.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")

	if v := os.Getenv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse APP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	c.OCR.Language = getEnv("OCR_LANGUAGE", c.OCR.Language)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.LLM.BaseURL = getEnv("OPENROUTER_BASE_URL", c.LLM.BaseURL)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	return nil
}

func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("environment variable OPENROUTER_API_KEY is required but not set")
	}
	if c.Pipeline.ChunkSize <= 0 {
		return fmt.Errorf("pipeline chunk_size must be positive, got %d", c.Pipeline.ChunkSize)
	}
	if c.Pipeline.ChunkOverlap < 0 || c.Pipeline.ChunkOverlap >= c.Pipeline.ChunkSize {
		return fmt.Errorf("pipeline chunk_overlap must be in [0, chunk_size), got %d", c.Pipeline.ChunkOverlap)
	}
	if c.Pipeline.ContextLimit <= 0 {
		return fmt.Errorf("pipeline context_limit must be positive, got %d", c.Pipeline.ContextLimit)
	}
	switch c.Pipeline.Chunker {
	case "recursive", "window", "sentence":
	default:
		return fmt.Errorf("unknown chunker %q", c.Pipeline.Chunker)
	}
	switch c.Pipeline.Reassembly {
	case "concat", "splice":
	default:
		return fmt.Errorf("unknown reassembly policy %q", c.Pipeline.Reassembly)
	}
	switch c.OCR.Engine {
	case "poppler", "mupdf":
	default:
		return fmt.Errorf("unknown ocr engine %q", c.OCR.Engine)
	}
	if c.OCR.DPI <= 0 {
		return fmt.Errorf("ocr dpi must be positive, got %d", c.OCR.DPI)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
