package httpserver

import (
	"time"

	"github.com/alnah/go-html2pdf"
)

// Default request body cap (10MB of HTML is already a pathological document).
const defaultMaxBodyBytes = 10 << 20

// Config holds the HTTP service configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// LoadTimeoutSeconds bounds the content-load stage (0 = library default).
	LoadTimeoutSeconds int `yaml:"loadTimeoutSeconds"`

	// EmitTimeoutSeconds bounds the PDF-generation stage (0 = library default).
	EmitTimeoutSeconds int `yaml:"emitTimeoutSeconds"`

	// MaxConcurrent caps simultaneous renders across both modes.
	// 0 means unbounded, which is the default.
	MaxConcurrent int `yaml:"maxConcurrent"`

	// MaxBodyBytes caps the request body size (0 = default 10MB).
	MaxBodyBytes int64 `yaml:"maxBodyBytes"`

	// AllowedOrigins enables CORS for the listed origins when non-empty.
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

func (c Config) loadTimeout() time.Duration {
	if c.LoadTimeoutSeconds > 0 {
		return time.Duration(c.LoadTimeoutSeconds) * time.Second
	}
	return html2pdf.DefaultLoadTimeout
}

func (c Config) emitTimeout() time.Duration {
	if c.EmitTimeoutSeconds > 0 {
		return time.Duration(c.EmitTimeoutSeconds) * time.Second
	}
	return html2pdf.DefaultEmitTimeout
}

func (c Config) maxBodyBytes() int64 {
	if c.MaxBodyBytes > 0 {
		return c.MaxBodyBytes
	}
	return defaultMaxBodyBytes
}
