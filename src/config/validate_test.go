package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  string
		warnings int
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "bad version",
			mutate:  func(c *Config) { c.Version = 2 },
			wantErr: "version: must be 1, got 2",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: `output.format: unknown format "xml"`,
		},
		{
			name:     "supported orchestrator",
			mutate:   func(c *Config) { c.Orchestrator.Version = "3.12.0" },
			warnings: 0,
		},
		{
			name:     "newer orchestrator",
			mutate:   func(c *Config) { c.Orchestrator.Version = "4.46.0" },
			warnings: 1,
		},
		{
			name:    "garbage orchestrator",
			mutate:  func(c *Config) { c.Orchestrator.Version = "latest" },
			wantErr: "orchestrator.version",
		},
		{
			name:     "public path without slash",
			mutate:   func(c *Config) { c.Paths.PublicPath = "/assets" },
			warnings: 1,
		},
		{
			name:    "sprite step without loader",
			mutate:  func(c *Config) { c.Paths.SVGSprites = []LoaderStep{{}} },
			wantErr: "paths.svg_sprites[0]: loader is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)

			warnings, err := Validate(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, warnings, tt.warnings)
		})
	}
}

func TestCheckOrchestrator(t *testing.T) {
	w, err := CheckOrchestrator("v3.0.0")
	require.NoError(t, err)
	assert.Empty(t, w)

	w, err = CheckOrchestrator("2.7.0")
	require.NoError(t, err)
	assert.Contains(t, w, "outside the supported range")
}
