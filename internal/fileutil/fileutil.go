// Package fileutil provides temp-file helpers for feeding content to the browser.
package fileutil

import (
	"fmt"
	"os"
)

// WriteTempFile creates a temporary HTML file with the given content.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content string) (path string, cleanup func(), err error) {
	tmpFile, err := os.CreateTemp("", "html2pdf-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}
