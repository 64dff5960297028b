package config

import (
	"os"
	"path/filepath"
	"time"
)

// EnvAPIBaseURL overrides the default API base URL when set.
const EnvAPIBaseURL = "RESQSYNC_API"

// Config holds runtime settings for the ResQSync CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the ResQSync HTTP API.
//   - DataDir: directory holding the credential store and downloads.
//   - RequestTimeout: per-request deadline for regular API calls. The
//     notification stream is not bound by it.
//   - LogLevel / LogFormat: see logging.New.
//   - MetricsAddr: listen address for /metrics while watching notifications;
//     empty disables the endpoint.
//   - S3Region / S3Endpoint: used when a report URL is s3://bucket/key.
//     Credentials come from the standard AWS environment.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	MetricsAddr    string
	S3Region       string
	S3Endpoint     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DataDir = ".resqsync"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MetricsAddr = ""
	c.S3Region = "us-east-1"
	c.S3Endpoint = ""
}

// DownloadDir is where downloaded reports land.
func (c *Config) DownloadDir() string {
	return filepath.Join(c.DataDir, "downloads")
}

// StorePath is the SQLite file holding the credential.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "session.db")
}

// LoadConfig constructs a Config, applies defaults and the RESQSYNC_API
// environment variable, then overlays values from a config file (if present)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if err := parseFile(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}
