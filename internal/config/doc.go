// Package config provides configuration management for the bikeshare tool.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//  1. Default values (Default)
//  2. A YAML file (bikeshare.yaml, config.yaml or configs/config.yaml, or -config)
//  3. Environment variables prefixed BIKESHARE_, seeded from .env when present
//
// # Environment Variables
//
//	BIKESHARE_DATA_DIR=/srv/bikeshare
//	BIKESHARE_LOGGING_LEVEL=debug
//	BIKESHARE_LOGGING_OUTPUT=both
//	BIKESHARE_DISPLAY_PAGE_SIZE=10
//	BIKESHARE_TELEMETRY_TRACE_EXPORTER=stdout
//
// The city catalogue can only be changed from YAML:
//
//	data:
//	  cities:
//	    - key: chicago
//	      name: Chicago
//	      file: chicago.csv
//
// # Validation
//
// Load validates the result with struct tags (go-playground/validator) and
// returns a CONFIG AppError describing the first violation.
package config
