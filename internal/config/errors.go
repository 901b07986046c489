package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrOutputEmpty        = errors.New("output cannot be empty")
	ErrRateOutOfRange     = errors.New("false_positive_rate must be in (0,1)")
)
