package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-html2pdf/internal/httpserver"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// loadConfig reads the server configuration. An empty path yields defaults;
// a named file must exist (no silent fallback).
func loadConfig(path string) (httpserver.Config, error) {
	cfg := httpserver.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}
