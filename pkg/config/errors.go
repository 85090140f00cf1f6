package config

import "errors"

var (
	// ErrParsingConfig is returned when a variable cannot be parsed into its field.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be loaded.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrInvalidValue is returned when a parsed value is out of range.
	ErrInvalidValue = errors.New("invalid configuration value")
)
