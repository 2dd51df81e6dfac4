package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-html2pdf/internal/httpserver"
)

// Version is set at build time via ldflags.
var Version = "dev"

const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	if flags.version {
		fmt.Println(Version)
		return exitSuccess
	}

	logger := newLogger(flags.logFormat, flags.verbose)
	slog.SetDefault(logger)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
		logger.Debug(fmt.Sprintf(format, a...))
	}))

	cfg, err := loadConfig(flags.config)
	if err != nil {
		logger.Error("loading config", "error", err)
		return exitError
	}
	if flags.addr != "" {
		cfg.Addr = flags.addr
	}

	server := httpserver.New(cfg, logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := server.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		return exitError
	}

	return exitSuccess
}

// newLogger builds the process logger. Request-scoped attributes
// (request_id, engine_id) are added per log line, not here.
func newLogger(format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
