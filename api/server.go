package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	_ "embed"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nitish992/chinese-pdf-ocr-correction/config"
	"github.com/Nitish992/chinese-pdf-ocr-correction/progress"
	"github.com/Nitish992/chinese-pdf-ocr-correction/repair"
)

//go:embed index.html
var indexHTML []byte

// Processor runs the repair pipeline for one uploaded document. Extraction
// and correction are separate so the raw text can be shown even when the
// correction step later fails.
type Processor interface {
	ExtractText(ctx context.Context, path string) (string, error)
	CorrectText(ctx context.Context, raw string, report repair.ProgressFunc) (string, int, error)
}

// Server exposes the pipeline over HTTP. Documents are processed one at a
// time; a second upload while one is in flight is rejected with 409.
type Server struct {
	service   Processor
	tracker   progress.Tracker
	uploadDir string
	port      int
	logger    *zap.Logger

	busy atomic.Bool

	mu      sync.RWMutex
	results map[string]*repair.Result
}

func NewServer(service Processor, tracker progress.Tracker, cfg config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		service:   service,
		tracker:   tracker,
		uploadDir: cfg.UploadDir,
		port:      cfg.Port,
		logger:    logger,
		results:   make(map[string]*repair.Result),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.index)
	router.GET("/health", s.health)
	router.POST("/api/documents", s.upload)
	router.GET("/api/documents/:id", s.status)
	router.GET("/api/documents/:id/result", s.result)
	return router
}

func (s *Server) Start() error {
	s.logger.Info("starting server", zap.Int("port", s.port))
	return s.Router().Run(fmt.Sprintf(":%d", s.port))
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) upload(c *gin.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": "another document is being processed"})
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		s.busy.Store(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "document file is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		s.busy.Store(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return
	}

	id := uuid.NewString()
	path := filepath.Join(s.uploadDir, id+".pdf")
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.busy.Store(false)
		os.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save upload: " + err.Error()})
		return
	}

	job := progress.Job{ID: id, State: progress.StatePending}
	if err := s.tracker.Update(c.Request.Context(), job); err != nil {
		s.busy.Store(false)
		os.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "track job: " + err.Error()})
		return
	}

	s.logger.Info("document accepted",
		zap.String("id", id),
		zap.String("filename", file.Filename),
		zap.Int64("bytes", file.Size))
	go s.process(id, path)

	c.JSON(http.StatusAccepted, gin.H{"id": id})
}

// process runs in its own goroutine. The uploaded file is removed when
// processing ends, whether it succeeded or not. The raw text is stored as
// soon as extraction finishes, so a failed correction still leaves it
// available for display.
func (s *Server) process(id, path string) {
	defer s.busy.Store(false)
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove upload", zap.String("path", path), zap.Error(err))
		}
	}()

	ctx := context.Background()
	// Status writes are best effort; a tracker outage must not abort the
	// document.
	update := func(job progress.Job) {
		if err := s.tracker.Update(ctx, job); err != nil {
			s.logger.Warn("update job status", zap.String("id", id), zap.Error(err))
		}
	}
	report := func(stage string, done, total int) {
		update(progress.Job{
			ID:          id,
			State:       progress.StateProcessing,
			Stage:       stage,
			ChunksDone:  done,
			ChunksTotal: total,
		})
	}

	report(repair.StageExtract, 0, 0)
	raw, err := s.service.ExtractText(ctx, path)
	if err != nil {
		s.logger.Error("processing failed", zap.String("id", id), zap.Error(err))
		update(progress.Job{ID: id, State: progress.StateFailed, Error: err.Error()})
		return
	}
	s.storeResult(id, &repair.Result{RawText: raw})

	corrected, chunks, err := s.service.CorrectText(ctx, raw, report)
	if err != nil {
		s.logger.Error("processing failed", zap.String("id", id), zap.Error(err))
		update(progress.Job{ID: id, State: progress.StateFailed, Error: err.Error()})
		return
	}

	s.storeResult(id, &repair.Result{RawText: raw, CorrectedText: corrected, Chunks: chunks})
	update(progress.Job{
		ID:          id,
		State:       progress.StateCompleted,
		ChunksDone:  chunks,
		ChunksTotal: chunks,
	})
	s.logger.Info("processing finished", zap.String("id", id), zap.Int("chunks", chunks))
}

func (s *Server) storeResult(id string, result *repair.Result) {
	s.mu.Lock()
	s.results[id] = result
	s.mu.Unlock()
}

func (s *Server) status(c *gin.Context) {
	job, err := s.tracker.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, progress.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) result(c *gin.Context) {
	id := c.Param("id")

	job, err := s.tracker.Get(c.Request.Context(), id)
	if errors.Is(err, progress.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.mu.RLock()
	result := s.results[id]
	s.mu.RUnlock()

	switch job.State {
	case progress.StateCompleted:
	case progress.StateFailed:
		// Extraction may have finished before the failure; if so the raw
		// text is still served alongside the error.
		if result == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": job.Error})
			return
		}
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "processing not finished"})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result no longer available"})
		return
	}
	c.JSON(http.StatusOK, result)
}
