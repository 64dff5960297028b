package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/flagx"
	"gopkg.in/yaml.v3"
)

// duration decodes "15s"-style strings or integer nanoseconds from both JSON
// and YAML.
type duration time.Duration

func (d *duration) set(v any) error {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = duration(p)
	case float64:
		*d = duration(time.Duration(x))
	case int:
		*d = duration(time.Duration(x))
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *duration) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

// fileConfig is the on-disk DTO. Pointer fields distinguish "absent" from
// "zero" so that a partial file only overrides what it names.
type fileConfig struct {
	APIBaseURL     *string   `json:"api_base_url" yaml:"api_base_url"`
	DataDir        *string   `json:"data_dir" yaml:"data_dir"`
	RequestTimeout *duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       *string   `json:"log_level" yaml:"log_level"`
	LogFormat      *string   `json:"log_format" yaml:"log_format"`
	MetricsAddr    *string   `json:"metrics_addr" yaml:"metrics_addr"`
	S3Region       *string   `json:"s3_region" yaml:"s3_region"`
	S3Endpoint     *string   `json:"s3_endpoint" yaml:"s3_endpoint"`
}

// parseFile overlays cfg with values from the config file named on the
// command line. No file flag means no changes.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	if fc.APIBaseURL != nil {
		cfg.APIBaseURL = *fc.APIBaseURL
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*fc.RequestTimeout)
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.MetricsAddr != nil {
		cfg.MetricsAddr = *fc.MetricsAddr
	}
	if fc.S3Region != nil {
		cfg.S3Region = *fc.S3Region
	}
	if fc.S3Endpoint != nil {
		cfg.S3Endpoint = *fc.S3Endpoint
	}
	return nil
}
