// Package config loads runtime configuration for the ResQSync CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. RESQSYNC_API environment variable for the API base URL.
//  3. Optional config file selected via -c, -config or --config. Files ending
//     in .yaml or .yml are decoded as YAML, everything else as JSON.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   data directory
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations accept strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://resqsync.example.org",
//	  "data_dir": "/var/lib/resqsync",
//	  "request_timeout": "15s",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "metrics_addr": ":9102"
//	}
//
// Flags are filtered out of the full command line with flagx.FilterArgs, so
// they can appear anywhere around the cobra subcommand.
package config
