package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/api"
	"github.com/Nitish992/chinese-pdf-ocr-correction/chunking"
	"github.com/Nitish992/chinese-pdf-ocr-correction/config"
	"github.com/Nitish992/chinese-pdf-ocr-correction/extract"
	"github.com/Nitish992/chinese-pdf-ocr-correction/llm"
	"github.com/Nitish992/chinese-pdf-ocr-correction/ocr"
	"github.com/Nitish992/chinese-pdf-ocr-correction/progress"
	"github.com/Nitish992/chinese-pdf-ocr-correction/rasterize"
	"github.com/Nitish992/chinese-pdf-ocr-correction/repair"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// =========
	// Env + Config
	// =========
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Rasterizer
	// =========
	var rasterizer rasterize.Rasterizer
	switch cfg.OCR.Engine {
	case "mupdf":
		rasterizer = rasterize.NewMuPDFRasterizer(cfg.OCR.DPI, logger)
	default:
		poppler := rasterize.NewPopplerRasterizer(cfg.OCR.DPI, logger)
		if err := poppler.Probe(); err != nil {
			logger.Fatal("pdftoppm is not usable", zap.Error(err))
		}
		rasterizer = poppler
	}

	// =========
	// OCR
	// =========
	recognizer := ocr.NewTesseractRecognizer(cfg.OCR.Language, logger)
	if err := recognizer.Probe(); err != nil {
		logger.Fatal("tesseract is not usable", zap.Error(err))
	}

	// =========
	// Extraction
	// =========
	var extractor extract.Extractor = extract.NewOCRExtractor(rasterizer, recognizer, logger)
	if cfg.OCR.TextLayerMin > 0 {
		extractor = extract.NewFallbackExtractor(
			extract.NewTextLayerExtractor(),
			extractor,
			cfg.OCR.TextLayerMin,
			logger,
		)
	}

	// =========
	// Chunking
	// =========
	chunker, err := chunking.New(cfg.Pipeline.Chunker, cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap)
	if err != nil {
		logger.Fatal("failed to create chunker", zap.Error(err))
	}

	// =========
	// LLM
	// =========
	llmClient, err := llm.NewOpenRouterClient(cfg.LLM, logger)
	if err != nil {
		logger.Fatal("failed to create llm client", zap.Error(err))
	}

	// =========
	// Progress tracking
	// =========
	var tracker progress.Tracker
	if cfg.Redis.Addr != "" {
		tracker, err = progress.NewRedisTracker(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
	} else {
		tracker = progress.NewMemoryTracker()
	}

	// =========
	// Pipeline + HTTP
	// =========
	service := repair.NewService(extractor, chunker, llmClient, cfg.Pipeline, logger)

	server := api.NewServer(service, tracker, cfg.Server, logger)
	logger.Info("listening", zap.Int("port", cfg.Server.Port))
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
