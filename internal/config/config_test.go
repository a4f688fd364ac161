package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, "data/bdm_data.csv", cfg.Data.File)
	assert.Equal(t, "02-01-2006 15:04", cfg.Data.DateFormat)
	assert.Equal(t, "₹", cfg.Data.CurrencySymbol)
	assert.NotEmpty(t, cfg.Data.Regions)

	require.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "non-positive read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "empty data file",
			mutate:  func(c *Config) { c.Data.File = "" },
			wantErr: "data file path",
		},
		{
			name:    "empty date format",
			mutate:  func(c *Config) { c.Data.DateFormat = "" },
			wantErr: "date format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateRepairsLoggingDefaults(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestMergePrefersEnvValues(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9090
	fileCfg.Data.File = "data/from_file.csv"
	fileCfg.Data.Regions = []string{"GOA"}

	envCfg := Config{}
	envCfg.Server.Port = 8081
	envCfg.Data.File = ""

	merged := merge(fileCfg, envCfg)

	assert.Equal(t, 8081, merged.Server.Port, "env port wins")
	assert.Equal(t, "data/from_file.csv", merged.Data.File, "file fills env gaps")
	assert.Equal(t, []string{"GOA"}, merged.Data.Regions)
}

func TestMergeFillsEveryZeroValuedSection(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.IdleTimeout = 90 * time.Second
	fileCfg.Server.ShutdownTimeout = 10 * time.Second
	fileCfg.Server.RateLimit.RPS = 25
	fileCfg.Server.RateLimit.Burst = 5
	fileCfg.Logging.Level = "debug"
	fileCfg.Logging.Format = "text"
	fileCfg.Logging.Output = "file"
	fileCfg.Logging.FilePath = "logs/from_file.log"
	fileCfg.Data.CurrencySymbol = "$"

	envCfg := Config{}
	envCfg.Logging.Level = "warn"

	merged := merge(fileCfg, envCfg)

	assert.Equal(t, 90*time.Second, merged.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, merged.Server.ShutdownTimeout)
	assert.Equal(t, float64(25), merged.Server.RateLimit.RPS)
	assert.Equal(t, 5, merged.Server.RateLimit.Burst)
	assert.Equal(t, "warn", merged.Logging.Level, "env level wins")
	assert.Equal(t, "text", merged.Logging.Format)
	assert.Equal(t, "file", merged.Logging.Output)
	assert.Equal(t, "logs/from_file.log", merged.Logging.FilePath)
	assert.Equal(t, "$", merged.Data.CurrencySymbol)
}

func TestDefaultRegionsAreUppercase(t *testing.T) {
	regions := DefaultRegions()

	require.NotEmpty(t, regions)
	for _, r := range regions {
		assert.Equal(t, strings.ToUpper(r), r)
	}
}
