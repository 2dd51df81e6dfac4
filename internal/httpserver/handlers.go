package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-html2pdf"
)

// Render strategies. Isolated launches a private engine per request; shared
// reuses the process-lifetime engine with a fresh session per request.
const (
	modeIsolated = "isolated"
	modeShared   = "shared"
)

// jsonBody is the JSON request envelope. Raw (non-JSON) bodies are treated
// as the content itself.
type jsonBody struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
}

func (s *Server) handleIsolated(c *gin.Context) {
	html, err := s.extractContent(c, func(b jsonBody) string { return b.HTML }, html2pdf.ErrEmptyHTML)
	if err != nil {
		writeError(c, s.logger, requestIDFrom(c), err)
		return
	}
	s.render(c, modeIsolated, html)
}

func (s *Server) handleShared(c *gin.Context) {
	html, err := s.extractContent(c, func(b jsonBody) string { return b.HTML }, html2pdf.ErrEmptyHTML)
	if err != nil {
		writeError(c, s.logger, requestIDFrom(c), err)
		return
	}
	s.render(c, modeShared, html)
}

// handleMarkdown converts a Markdown body to HTML and renders it on the
// shared engine.
func (s *Server) handleMarkdown(c *gin.Context) {
	md, err := s.extractContent(c, func(b jsonBody) string { return b.Markdown }, html2pdf.ErrEmptyMarkdown)
	if err != nil {
		writeError(c, s.logger, requestIDFrom(c), err)
		return
	}

	html, err := s.markdown.ToHTML(md)
	if err != nil {
		writeError(c, s.logger, requestIDFrom(c), err)
		return
	}
	s.render(c, modeShared, html)
}

// extractContent pulls the document out of the request: the named field of
// a JSON envelope, or the raw body for any other content type. Blank
// content fails fast with emptyErr before any engine resource is touched.
func (s *Server) extractContent(c *gin.Context, field func(jsonBody) string, emptyErr error) (string, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", fmt.Errorf("reading request body: %w", err)
	}

	content := string(body)
	if c.ContentType() == "application/json" {
		var envelope jsonBody
		if err := json.Unmarshal(body, &envelope); err != nil {
			return "", fmt.Errorf("%w: malformed JSON body: %v", emptyErr, err)
		}
		content = field(envelope)
	}

	if strings.TrimSpace(content) == "" {
		return "", emptyErr
	}
	return content, nil
}

// render is the dual-mode dispatch: obtain an engine per the strategy, run
// the bounded render, frame the response, and sequence cleanup relative to
// response completion.
func (s *Server) render(c *gin.Context, mode string, html string) {
	requestID := requestIDFrom(c)
	start := time.Now()

	// Admission-control point. Unbounded when no cap is configured.
	if s.sem != nil {
		if err := s.sem.Acquire(c.Request.Context(), 1); err != nil {
			s.metrics.observe(mode, err, 0)
			writeError(c, s.logger, requestID, fmt.Errorf("awaiting render slot: %w", err))
			return
		}
		defer s.sem.Release(1)
	}

	var (
		engine      html2pdf.Engine
		err         error
		ownedEngine bool
	)
	switch mode {
	case modeIsolated:
		engine, err = s.launch()
		ownedEngine = true
	case modeShared:
		engine, err = s.shared.Acquire(c.Request.Context())
	}
	if err != nil {
		s.metrics.observe(mode, err, 0)
		writeError(c, s.logger, requestID, err)
		return
	}

	session, pdf, err := s.coordinator.Render(engine, html, requestID)
	if err != nil {
		// The coordinator already closed the session; a private engine
		// is torn down here. The shared engine outlives the request.
		if ownedEngine {
			s.closeQuietly(engine, requestID)
		}
		s.metrics.observe(mode, err, 0)
		writeError(c, s.logger, requestID, err)
		return
	}

	// Deferred cleanup tied to response completion: these run after the
	// body write returns, on normal completion and on client disconnect
	// alike. Session first, then the request-owned engine.
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			s.logger.Debug("closing session after response",
				"request_id", requestID, "error", closeErr)
		}
		if ownedEngine {
			s.closeQuietly(engine, requestID)
		}
	}()

	writePDF(c, html2pdf.SafeFilename(c.Query("filename")), pdf)
	s.metrics.observe(mode, nil, time.Since(start))

	s.logger.Info("render completed",
		"request_id", requestID,
		"mode", mode,
		"engine_id", engine.ID(),
		"pdf_bytes", len(pdf),
		"duration_ms", time.Since(start).Milliseconds())
}

// closeQuietly tears down a request-owned engine; cleanup failures are
// logged, never propagated.
func (s *Server) closeQuietly(engine html2pdf.Engine, requestID string) {
	if err := engine.Close(); err != nil {
		s.logger.Debug("closing engine",
			"request_id", requestID,
			"engine_id", engine.ID(),
			"error", err)
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
