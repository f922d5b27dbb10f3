// Package server exposes the extraction engine over HTTP. The transport is
// a thin shell: it validates uploads, calls OCR, hands text to the pipeline
// and returns the structured result. All extraction policy lives below it.
package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ocrsift/ocrsift/internal/pipeline"
	"github.com/ocrsift/ocrsift/internal/registry"
)

// MaxUploadBytes caps accepted image uploads.
const MaxUploadBytes = 20 << 20

// TextExtractor is the OCR boundary the server depends on.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, image []byte) (string, error)
}

// Server wires the registry, orchestrator and OCR client behind gin routes.
type Server struct {
	registry     *registry.Registry
	orchestrator *pipeline.Orchestrator
	ocr          TextExtractor
}

// New builds the HTTP layer over an already-populated registry.
func New(reg *registry.Registry, orch *pipeline.Orchestrator, ocrClient TextExtractor) *Server {
	return &Server{registry: reg, orchestrator: orch, ocr: ocrClient}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/extraction_types", s.handleTypes)
	r.POST("/extract", s.handleExtract)
	// Kept for callers of the original single-purpose endpoint.
	r.POST("/extract_person", func(c *gin.Context) {
		q := c.Request.URL.Query()
		q.Set("extraction_type", "person")
		c.Request.URL.RawQuery = q.Encode()
		s.handleExtract(c)
	})
	return r
}

func (s *Server) handleTypes(c *gin.Context) {
	types := make([]registry.TypeInfo, 0, 8)
	for info := range s.registry.Types() {
		types = append(types, info)
	}
	c.JSON(http.StatusOK, gin.H{"supported_types": types})
}

func (s *Server) handleExtract(c *gin.Context) {
	reqID := uuid.New().String()
	extractionType := c.DefaultQuery("extraction_type", "person")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, failure(extractionType, "missing image file upload"))
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, failure(extractionType, "image too large"))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, failure(extractionType, "please upload an image file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, failure(extractionType, "unreadable upload"))
		return
	}
	defer f.Close()
	image, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, failure(extractionType, "unreadable upload"))
		return
	}

	log.Info().Str("req_id", reqID).Str("type", extractionType).
		Str("file", fileHeader.Filename).Int("bytes", len(image)).Msg("extract request")

	text, err := s.ocr.ExtractText(c.Request.Context(), fileHeader.Filename, image)
	if err != nil {
		log.Warn().Err(err).Str("req_id", reqID).Msg("ocr failed")
		c.JSON(http.StatusOK, failure(extractionType, "OCR text extraction failed: "+err.Error()))
		return
	}

	res := s.orchestrator.Extract(c.Request.Context(), text, extractionType)
	status := http.StatusOK
	if !res.Success {
		// Resolution failures are caller errors; everything else the
		// pipeline reports as a structured success.
		status = http.StatusBadRequest
	}
	c.JSON(status, res)
}

func failure(extractionType, message string) pipeline.Result {
	return pipeline.Result{
		Success:        false,
		ExtractionType: extractionType,
		Error:          message,
	}
}
