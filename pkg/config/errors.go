package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed into the target struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when an explicitly requested env file cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")
)
