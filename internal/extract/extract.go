// Package extract mines class-section records from tabular sheets and from
// free text.
//
// Extraction never fails: a sheet or document that cannot be read is logged,
// reported and contributes zero records.
package extract

import (
	"context"
	"errors"

	"github.com/AdrianCGon/centeno-api/internal/classify"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
	"github.com/AdrianCGon/centeno-api/internal/logger"
	"github.com/AdrianCGon/centeno-api/internal/metrics"
)

// Source kinds, used as metric labels.
const (
	KindTabular = "tabular"
	KindText    = "text"
)

// Default window sizes around a free-text section code.
const (
	DefaultForwardWindow  = 20
	DefaultBackwardWindow = 10
)

// FailureReporter receives recovered extraction failures, e.g. to forward
// them to an error tracker.
type FailureReporter func(ctx context.Context, err *domerrors.ExtractionError)

// Options configures an Extractor. Zero values select defaults; nil
// collaborators are disabled.
type Options struct {
	ForwardWindow  int
	BackwardWindow int

	Logger    *logger.Logger
	Metrics   *metrics.Metrics
	Tracer    classify.Tracer
	OnFailure FailureReporter
}

// Extractor turns documents into records. It is safe for concurrent use when
// its Tracer and FailureReporter are.
type Extractor struct {
	forward   int
	backward  int
	log       *logger.Logger
	metrics   *metrics.Metrics
	rows      *classify.Contextualizer
	onFailure FailureReporter
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	e := &Extractor{
		forward:   opts.ForwardWindow,
		backward:  opts.BackwardWindow,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		rows:      classify.NewContextualizer(opts.Tracer),
		onFailure: opts.OnFailure,
	}
	if e.forward <= 0 {
		e.forward = DefaultForwardWindow
	}
	if e.backward <= 0 {
		e.backward = DefaultBackwardWindow
	}
	if e.log == nil {
		e.log = logger.Discard()
	}
	e.log = e.log.WithModule("extract")
	return e
}

var defaultExtractor = New(Options{})

// fail logs, counts and reports a recovered failure.
func (e *Extractor) fail(ctx context.Context, kind string, err *domerrors.ExtractionError) {
	reason := "other"
	switch {
	case errors.Is(err, errPanic):
		reason = "panic"
	case errors.Is(err, domerrors.ErrEmptySource):
		reason = "empty"
	case domerrors.IsUnparseable(err):
		reason = "unparseable"
	}

	e.log.WithError(err).WarnContext(ctx, "Extraction failed, source yields no records",
		"kind", kind,
		"sheet", err.Sheet,
		"reason", reason)
	e.metrics.RecordExtractionFailure(kind, reason)
	if e.onFailure != nil {
		e.onFailure(ctx, err)
	}
}

var errPanic = errors.New("panic during extraction")
