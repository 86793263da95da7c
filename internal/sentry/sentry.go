// Package sentry reports recovered extraction failures to a Sentry-compatible
// backend (Better Stack Errors).
package sentry

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/AdrianCGon/centeno-api/internal/ctxutil"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
)

// Config holds the Better Stack connection settings.
type Config struct {
	// Token is the Better Stack Errors application token. Empty disables reporting.
	Token string

	// Host is the ingesting host (e.g. "errors.betterstack.com").
	Host string

	Environment string
	Release     string

	// SampleRate is the fraction of events sent (0.0-1.0). Zero means 1.0.
	SampleRate float64

	Debug bool
}

// Enabled reports whether cfg turns reporting on.
func (c Config) Enabled() bool {
	return c.Token != ""
}

// Initialize sets up the global hub. With an empty token it does nothing.
// The DSN is https://$TOKEN@$HOST/1; Better Stack ignores the project id.
func Initialize(cfg Config) error {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Host == "" {
		return errors.New("sentry host is required when token is provided")
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              "https://" + cfg.Token + "@" + cfg.Host + "/1",
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
}

// Flush waits up to timeout for buffered events to be sent.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled reports whether the global hub has a client.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureExtractionFailure sends a recovered extraction failure as a warning
// event tagged with its source, sheet and run id. The hub bound to ctx is
// used when there is one, the global hub otherwise. Its signature matches
// extract.FailureReporter.
func CaptureExtractionFailure(ctx context.Context, err *domerrors.ExtractionError) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelWarning)
		scope.SetTag("component", "extract")
		scope.SetTag("source", err.Source)
		if err.Sheet != "" {
			scope.SetTag("sheet", err.Sheet)
		}
		if runID, ok := ctxutil.GetRunID(ctx); ok {
			scope.SetTag("run_id", runID)
		}
		hub.CaptureException(err)
	})
}
