package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags around a subcommand",
			args: []string{"-a", "http://api:9090", "hospitals", "-d", "/data", "-t", "5", "-l", "debug"},
			expected: &Config{APIBaseURL: "http://api:9090", DataDir: "/data", RequestTimeout: 5 * time.Second,
				LogLevel: "debug"}},
		{name: "unknown flags ignored", args: []string{"--available", "-a", "http://x"},
			expected: &Config{APIBaseURL: "http://x"}},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectErr: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.NoError(t, parseFlags(cfg, []string{"login"}))

	want := &Config{}
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestGlobalFlags_IncludesConfigFileFlags(t *testing.T) {
	got := GlobalFlags()
	want := []string{"-a", "-d", "-t", "-l", "-c", "-config", "--config"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("GlobalFlags mismatch (-want +got):\n%s", diff)
	}
}
