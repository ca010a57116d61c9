package config

import "errors"

var (
	// ErrNilConfig is returned when a nil pointer is passed to Load.
	ErrNilConfig = errors.New("config.nil_pointer")

	// ErrParseFailed is returned when the environment cannot be parsed into
	// the target struct. The underlying env.Parse error is joined to it.
	ErrParseFailed = errors.New("config.parse_failed")

	// ErrEnvFileLoadFailed is returned when an explicitly requested .env file
	// cannot be loaded. The default .env file is always optional.
	ErrEnvFileLoadFailed = errors.New("config.env_file_load_failed")
)
