package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Logging
	EnvLogLevel            = "CENTENO_LOG_LEVEL"
	EnvLogFile             = "CENTENO_LOG_FILE"
	EnvTraceClassification = "CENTENO_TRACE_CLASSIFICATION"

	// Matching
	EnvFuzzyThreshold      = "CENTENO_FUZZY_THRESHOLD"
	EnvMaxRecordsPerSource = "CENTENO_MAX_RECORDS_PER_SOURCE"
	EnvMaxMatches          = "CENTENO_MAX_MATCHES"

	// Free-text extraction
	EnvForwardWindow  = "CENTENO_FORWARD_WINDOW"
	EnvBackwardWindow = "CENTENO_BACKWARD_WINDOW"

	// Run
	EnvComparisonTimeout = "CENTENO_COMPARISON_TIMEOUT"
	EnvMetricsFile       = "CENTENO_METRICS_FILE"

	// Sentry (Better Stack Errors)
	EnvSentryToken       = "CENTENO_SENTRY_TOKEN"
	EnvSentryHost        = "CENTENO_SENTRY_HOST"
	EnvSentryEnvironment = "CENTENO_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "CENTENO_SENTRY_SAMPLE_RATE"
)
