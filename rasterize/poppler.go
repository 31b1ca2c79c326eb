package rasterize

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PopplerRasterizer shells out to pdftoppm. It is the default backend
// because poppler handles malformed scanned PDFs better than most
// in-process renderers.
type PopplerRasterizer struct {
	dpi    int
	logger *zap.Logger
}

func NewPopplerRasterizer(dpi int, logger *zap.Logger) *PopplerRasterizer {
	return &PopplerRasterizer{
		dpi:    dpi,
		logger: logger,
	}
}

// Probe verifies that pdftoppm is installed and runnable. Call it once at
// startup so a missing poppler install fails the process instead of the
// first document.
func (p *PopplerRasterizer) Probe() error {
	path, err := exec.LookPath("pdftoppm")
	if err != nil {
		return fmt.Errorf("pdftoppm not found in PATH, install poppler-utils: %w", err)
	}

	out, err := exec.Command(path, "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("pdftoppm probe failed: %w", err)
	}

	version := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	p.logger.Info("poppler available", zap.String("version", version))
	return nil
}

func (p *PopplerRasterizer) Rasterize(ctx context.Context, path string) ([]Page, error) {
	dir, err := os.MkdirTemp("", "rasterize")
	if err != nil {
		return nil, fmt.Errorf("create page directory: %w", err)
	}
	defer os.RemoveAll(dir)

	base := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", path, base, "-png", "-r", strconv.Itoa(p.dpi))
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm %s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}

	// pdftoppm zero-pads page numbers, so a lexical sort yields page order.
	files, err := filepath.Glob(base + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", path)
	}
	sort.Strings(files)

	pages := make([]Page, 0, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read rendered page %d: %w", i+1, err)
		}
		pages = append(pages, Page{Number: i + 1, PNG: data})
	}

	p.logger.Debug("rasterized document",
		zap.String("file", path),
		zap.Int("pages", len(pages)),
		zap.Int("dpi", p.dpi))
	return pages, nil
}
