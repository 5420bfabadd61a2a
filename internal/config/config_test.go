package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "bikeshare/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into a scratch directory so no stray config or .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data", cfg.Data.Dir)
				assert.Equal(t, DefaultCities(), cfg.Data.Cities)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.True(t, cfg.Telemetry.EnableMetrics)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.True(t, cfg.Display.Color)
				assert.Equal(t, 5, cfg.Display.PageSize)
				assert.False(t, cfg.Statistics.IncludeUnspecifiedBirthYear)
			},
		},
		{
			name: "yaml file overrides defaults",
			file: `
data:
  dir: /srv/bikeshare
  cities:
    - key: boston
      name: Boston
      file: boston.xlsx
display:
  page_size: 10
statistics:
  include_unspecified_birth_year: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/bikeshare", cfg.Data.Dir)
				require.Len(t, cfg.Data.Cities, 1)
				assert.Equal(t, "boston.xlsx", cfg.Data.Cities[0].File)
				assert.Equal(t, 10, cfg.Display.PageSize)
				assert.True(t, cfg.Statistics.IncludeUnspecifiedBirthYear)
				assert.Equal(t, "warn", cfg.Logging.Level, "untouched sections keep defaults")
			},
		},
		{
			name: "environment overrides yaml",
			file: `
display:
  page_size: 10
logging:
  level: info
`,
			env: map[string]string{
				"BIKESHARE_DISPLAY_PAGE_SIZE": "3",
				"BIKESHARE_DISPLAY_COLOR":     "false",
				"BIKESHARE_LOGGING_LEVEL":     "warning",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3, cfg.Display.PageSize)
				assert.False(t, cfg.Display.Color)
				assert.Equal(t, "warn", cfg.Logging.Level, "warning is normalised")
			},
		},
		{
			name:    "invalid page size fails validation",
			env:     map[string]string{"BIKESHARE_DISPLAY_PAGE_SIZE": "0"},
			wantErr: true,
		},
		{
			name:    "invalid log output fails validation",
			env:     map[string]string{"BIKESHARE_LOGGING_OUTPUT": "syslog"},
			wantErr: true,
		},
		{
			name:    "unparsable env value",
			env:     map[string]string{"BIKESHARE_TELEMETRY_SAMPLE_RATIO": "lots"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "data: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeFile(t, filepath.Join(dir, "bikeshare.yaml"), tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_DiscoversConfigFile(t *testing.T) {
	dir := chdir(t)
	writeFile(t, filepath.Join(dir, "bikeshare.yaml"), "data:\n  dir: trips\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "trips", cfg.Data.Dir)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	writeFile(t, filepath.Join(dir, ".env"), "BIKESHARE_DATA_DIR=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("BIKESHARE_DATA_DIR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Data.Dir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.Data.Dir = "" },
			wantErr: true,
		},
		{
			name:    "no cities",
			mutate:  func(c *Config) { c.Data.Cities = nil },
			wantErr: true,
		},
		{
			name: "duplicate city keys",
			mutate: func(c *Config) {
				c.Data.Cities = append(c.Data.Cities, CitySource{Key: "chicago", Name: "Chicago 2", File: "c2.csv"})
			},
			wantErr: true,
		},
		{
			name:    "city without file",
			mutate:  func(c *Config) { c.Data.Cities[0].File = "" },
			wantErr: true,
		},
		{
			name:    "file output needs a path",
			mutate:  func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" },
			wantErr: true,
		},
		{
			name:    "unknown trace exporter",
			mutate:  func(c *Config) { c.Telemetry.TraceExporter = "otlp" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog := NewCatalog(DefaultCities())

	tests := []struct {
		answer  string
		wantKey string
		wantOK  bool
	}{
		{answer: "chicago", wantKey: "chicago", wantOK: true},
		{answer: "NYC", wantKey: "nyc", wantOK: true},
		{answer: " New York City ", wantKey: "nyc", wantOK: true},
		{answer: "Washington", wantKey: "washington", wantOK: true},
		{answer: "boston", wantOK: false},
		{answer: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			city, ok := catalog.Lookup(tt.answer)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, city.Key)
		})
	}

	assert.Equal(t, []string{"Chicago", "New York City", "Washington"}, catalog.Names())

	cities := catalog.Cities()
	cities[0].File = "changed.csv"
	original, _ := catalog.Lookup("chicago")
	assert.Equal(t, "chicago.csv", original.File)
}
