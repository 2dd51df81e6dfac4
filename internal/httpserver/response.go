package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-html2pdf"
)

// errorBody is the JSON failure envelope.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// writePDF frames a complete artifact: exact length, attachment disposition.
// It is only called once the full PDF is in hand, so the client never sees a
// half-written binary body.
func writePDF(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// writeError maps a failure to the JSON error contract. A response that has
// already started cannot be amended, so in that case the failure is only
// logged.
func writeError(c *gin.Context, logger *slog.Logger, requestID string, err error) {
	if c.Writer.Written() {
		logger.Error("render failed after response started",
			"request_id", requestID,
			"error", err)
		return
	}

	status, label := classify(err)

	logger.Error("request failed",
		"request_id", requestID,
		"status", status,
		"error", err)

	c.JSON(status, errorBody{Error: label, Details: err.Error()})
}

func classify(err error) (status int, label string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, html2pdf.ErrEmptyHTML),
		errors.Is(err, html2pdf.ErrEmptyMarkdown),
		errors.Is(err, html2pdf.ErrHTMLConversion):
		return http.StatusBadRequest, "invalid input"
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "payload too large"
	case errors.Is(err, html2pdf.ErrTimeout):
		return http.StatusInternalServerError, "render timed out"
	case errors.Is(err, html2pdf.ErrEngineUnavailable):
		return http.StatusInternalServerError, "rendering engine unavailable"
	default:
		return http.StatusInternalServerError, "render failed"
	}
}
