package config

import "errors"

var (
	// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidConfig wraps validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)
