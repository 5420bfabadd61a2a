package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	apperrors "bikeshare/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "BIKESHARE"

// Config represents the complete application configuration
type Config struct {
	Data       DataConfig       `yaml:"data" envconfig:"DATA"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
	Display    DisplayConfig    `yaml:"display" envconfig:"DISPLAY"`
	Statistics StatisticsConfig `yaml:"statistics" envconfig:"STATISTICS"`
}

// DataConfig describes where trip sources live
type DataConfig struct {
	Dir    string       `yaml:"dir" envconfig:"DIR" validate:"required"`
	Cities []CitySource `yaml:"cities" ignored:"true" validate:"required,min=1,unique=Key,dive"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig controls the OpenTelemetry providers
type TelemetryConfig struct {
	EnableMetrics bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// DisplayConfig contains console rendering options
type DisplayConfig struct {
	Color    bool `yaml:"color" envconfig:"COLOR"`
	PageSize int  `yaml:"page_size" envconfig:"PAGE_SIZE" validate:"gte=1,lte=100"`
}

// StatisticsConfig tunes the statistics engine
type StatisticsConfig struct {
	// IncludeUnspecifiedBirthYear lets the 0 placeholder take part in min/max/mode.
	IncludeUnspecifiedBirthYear bool `yaml:"include_unspecified_birth_year" envconfig:"INCLUDE_UNSPECIFIED_BIRTH_YEAR"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NewConfigError("failed to load .env file", err)
	}

	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
	}

	// Fields without a matching variable keep their current value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and normalises a few values.
func (c *Config) Validate() error {
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return apperrors.NewConfigError(fmt.Sprintf("config validation failed: %s violates %q", first.Namespace(), first.Tag()), err)
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the first config file found in the common locations
func getConfigFilePath() string {
	locations := []string{
		"bikeshare.yaml",
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:    DefaultDataDir,
			Cities: DefaultCities(),
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/bikeshare.log",
		},
		Telemetry: TelemetryConfig{
			EnableMetrics: true,
			TraceExporter: "none",
			SampleRatio:   1.0,
		},
		Display: DisplayConfig{
			Color:    true,
			PageSize: DefaultPageSize,
		},
	}
}
