package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the command-line configuration surface. Everything else
// lives in the YAML config file.
type cliFlags struct {
	addr      string
	config    string
	logFormat string
	verbose   bool
	version   bool
}

// parseFlags parses args (including the program name at args[0]).
func parseFlags(args []string) (*cliFlags, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&flags.addr, "addr", "", "listen address (overrides config file)")
	fs.StringVarP(&flags.config, "config", "c", "", "path to YAML config file")
	fs.StringVar(&flags.logFormat, "log-format", "text", `log output format: "text" or "json"`)
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	if flags.logFormat != "text" && flags.logFormat != "json" {
		return nil, fmt.Errorf("invalid --log-format %q: must be \"text\" or \"json\"", flags.logFormat)
	}

	return flags, nil
}
