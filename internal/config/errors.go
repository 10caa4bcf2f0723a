package config

import "errors"

var (
	// ErrConfigLoadFailed wraps every failure to produce a Config from a file.
	ErrConfigLoadFailed = errors.New("failed to load configuration")

	// ErrConfigNotFound is wrapped alongside ErrConfigLoadFailed when the file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)
