package fileutil

import (
	"os"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	content := "<html><body>temp</body></html>"

	path, cleanup, err := WriteTempFile(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	if !strings.Contains(path, "html2pdf-") {
		t.Errorf("expected temp path with 'html2pdf-' prefix, got %q", path)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("expected .html suffix, got %q", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from os.CreateTemp
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != content {
		t.Errorf("expected content %q, got %q", content, data)
	}
}

func TestWriteTempFile_CleanupRemovesFile(t *testing.T) {
	path, cleanup, err := WriteTempFile("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed, stat err = %v", err)
	}
}

func TestWriteTempFile_EmptyContent(t *testing.T) {
	path, cleanup, err := WriteTempFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty file, got %d bytes", info.Size())
	}
}
