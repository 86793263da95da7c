package config

import "time"

const (
	// ComparisonTimeout bounds one end-to-end comparison, adapters included.
	ComparisonTimeout = 60 * time.Second

	// SentryFlush is how long the CLI waits for buffered error events on exit.
	SentryFlush = 2 * time.Second
)
