package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/chunking"
	"github.com/Nitish992/chinese-pdf-ocr-correction/config"
	"github.com/Nitish992/chinese-pdf-ocr-correction/extract"
	"github.com/Nitish992/chinese-pdf-ocr-correction/llm"
	"github.com/Nitish992/chinese-pdf-ocr-correction/ocr"
	"github.com/Nitish992/chinese-pdf-ocr-correction/rasterize"
	"github.com/Nitish992/chinese-pdf-ocr-correction/repair"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	outDir := flag.String("o", ".", "directory for the output text files")
	maxPages := flag.Int("max-pages", 0, "reject documents with more pages (0 = no limit)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pdfrepair [flags] document.pdf")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

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
	// Preflight
	// =========
	pages, err := rasterize.Preflight(path, *maxPages)
	if err != nil {
		logger.Fatal("document rejected", zap.String("path", path), zap.Error(err))
	}
	logger.Info("document accepted", zap.String("path", path), zap.Int("pages", pages))

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
	// Chunking + LLM
	// =========
	chunker, err := chunking.New(cfg.Pipeline.Chunker, cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap)
	if err != nil {
		logger.Fatal("failed to create chunker", zap.Error(err))
	}

	llmClient, err := llm.NewOpenRouterClient(cfg.LLM, logger)
	if err != nil {
		logger.Fatal("failed to create llm client", zap.Error(err))
	}

	// =========
	// Pipeline
	// =========
	service := repair.NewService(extractor, chunker, llmClient, cfg.Pipeline, logger)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rawPath := filepath.Join(*outDir, base+".ocr.txt")
	correctedPath := filepath.Join(*outDir, base+".corrected.txt")

	ctx := context.Background()

	// The raw text goes to disk before correction starts, so hours of OCR
	// work are not lost when the model call fails halfway through.
	raw, err := service.ExtractText(ctx, path)
	if err != nil {
		logger.Fatal("extraction failed", zap.Error(err))
	}
	if err := os.WriteFile(rawPath, []byte(raw), 0o644); err != nil {
		logger.Fatal("write raw text", zap.Error(err))
	}

	report := func(stage string, done, total int) {
		if stage == repair.StageCorrect && total > 0 {
			fmt.Fprintf(os.Stderr, "\rcorrecting chunk %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	corrected, chunks, err := service.CorrectText(ctx, raw, report)
	if err != nil {
		logger.Fatal("correction failed", zap.String("raw", rawPath), zap.Error(err))
	}

	if err := os.WriteFile(correctedPath, []byte(corrected), 0o644); err != nil {
		logger.Fatal("write corrected text", zap.Error(err))
	}

	logger.Info("document processed",
		zap.Int("chunks", chunks),
		zap.String("raw", rawPath),
		zap.String("corrected", correctedPath),
	)
}
