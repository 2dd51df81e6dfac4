package html2pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"
)

// Stage deadlines. Load and emit get independent budgets so a slow page
// load cannot eat into PDF generation time.
const (
	DefaultLoadTimeout = 25 * time.Second
	DefaultEmitTimeout = 20 * time.Second
)

// pdfSignature is the magic prefix of every well-formed PDF.
var pdfSignature = []byte("%PDF-")

// HasPDFSignature reports whether data starts with the PDF magic bytes.
func HasPDFSignature(data []byte) bool {
	return bytes.HasPrefix(data, pdfSignature)
}

// Coordinator drives a single render on an engine: open a session, load the
// content, emit the artifact, each stage under its own deadline.
type Coordinator struct {
	loadTimeout time.Duration
	emitTimeout time.Duration
	logger      *slog.Logger
}

// CoordinatorOption customizes a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLoadTimeout overrides the content-load deadline.
func WithLoadTimeout(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.loadTimeout = d }
}

// WithEmitTimeout overrides the PDF-generation deadline.
func WithEmitTimeout(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.emitTimeout = d }
}

// WithLogger sets the logger used for render anomalies.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = logger }
}

// NewCoordinator creates a Coordinator with default deadlines.
func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		loadTimeout: DefaultLoadTimeout,
		emitTimeout: DefaultEmitTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render loads html into a fresh session on engine and emits the PDF.
//
// On success the session is returned still open so the caller can tie its
// closure to the response lifecycle. On any failure the session is closed
// here, best-effort, before the original error is propagated — sessions
// never leak on the error path.
func (c *Coordinator) Render(engine Engine, html string, correlationID string) (Session, []byte, error) {
	if !engine.Connected() {
		return nil, nil, fmt.Errorf("%w: engine %s", ErrEngineUnavailable, engine.ID())
	}

	session, err := engine.NewSession()
	if err != nil {
		return nil, nil, err
	}

	_, err = withDeadline(func() (struct{}, error) {
		return struct{}{}, session.Load(html)
	}, c.loadTimeout, "content load timed out")
	if err != nil {
		c.closeSession(session, correlationID)
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}

	pdf, err := withDeadline(session.EmitPDF, c.emitTimeout, "pdf generation timed out")
	if err != nil {
		c.closeSession(session, correlationID)
		return nil, nil, fmt.Errorf("generating pdf: %w", err)
	}

	// Observational check only: an unexpected prefix is logged but the
	// bytes are returned unmodified, never replaced or blocked.
	if !HasPDFSignature(pdf) {
		c.logger.Warn("rendered artifact missing PDF signature",
			"request_id", correlationID,
			"engine_id", engine.ID(),
			"bytes", len(pdf))
	}

	return session, pdf, nil
}

// closeSession closes a session on the failure path. The close error is
// swallowed so cleanup never masks the original failure.
func (c *Coordinator) closeSession(session Session, correlationID string) {
	if err := session.Close(); err != nil {
		c.logger.Debug("closing session after render failure",
			"request_id", correlationID,
			"error", err)
	}
}
