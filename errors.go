package html2pdf

import "errors"

// Sentinel errors for render operations.
var (
	ErrEmptyHTML     = errors.New("html content cannot be empty")
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	ErrEngineLaunch      = errors.New("failed to launch rendering engine")
	ErrEngineConnect     = errors.New("failed to connect to rendering engine")
	ErrEngineUnavailable = errors.New("rendering engine is disconnected")
	ErrSessionOpen       = errors.New("failed to open rendering session")
	ErrContentLoad       = errors.New("failed to load content")
	ErrPDFGeneration     = errors.New("PDF generation failed")

	// ErrTimeout is wrapped with a stage-specific message so callers can
	// tell a load timeout from an emit timeout.
	ErrTimeout = errors.New("operation timed out")

	ErrHTMLConversion = errors.New("HTML conversion failed")
)
