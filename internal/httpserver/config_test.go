package httpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alnah/go-html2pdf"
)

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, html2pdf.DefaultLoadTimeout, cfg.loadTimeout())
	assert.Equal(t, html2pdf.DefaultEmitTimeout, cfg.emitTimeout())
	assert.Equal(t, int64(defaultMaxBodyBytes), cfg.maxBodyBytes())
	assert.Zero(t, cfg.MaxConcurrent, "unbounded concurrency is the default")
}

func TestConfigOverrides(t *testing.T) {
	cfg := Config{
		LoadTimeoutSeconds: 5,
		EmitTimeoutSeconds: 7,
		MaxBodyBytes:       1024,
	}

	assert.Equal(t, 5*time.Second, cfg.loadTimeout())
	assert.Equal(t, 7*time.Second, cfg.emitTimeout())
	assert.Equal(t, int64(1024), cfg.maxBodyBytes())
}
