package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/flagx"
)

// globalFlags are the flags read by parseFlags.
var globalFlags = []string{"-a", "-d", "-t", "-l"}

// GlobalFlags lists every flag consumed by LoadConfig, config file flags
// included. Callers strip them before handing the rest to the command tree.
func GlobalFlags() []string {
	out := append([]string{}, globalFlags...)
	return append(out, flagx.ConfigFileFlags...)
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL (default from Config)
//	-d string   data directory (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-l string   log level (default from Config)
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("resqsync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, globalFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
