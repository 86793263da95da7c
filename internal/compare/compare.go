// Package compare runs a full comparison of two documents: extraction of both
// sides in parallel, then matching.
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AdrianCGon/centeno-api/internal/comision"
	"github.com/AdrianCGon/centeno-api/internal/ctxutil"
	"github.com/AdrianCGon/centeno-api/internal/extract"
	"github.com/AdrianCGon/centeno-api/internal/logger"
	"github.com/AdrianCGon/centeno-api/internal/match"
	"github.com/AdrianCGon/centeno-api/internal/metrics"
)

// Matching pipelines.
const (
	PipelineStandard = "standard"
	PipelineCapped   = "capped"
)

// Options configures a Service. Nil collaborators get defaults.
type Options struct {
	Extractor *extract.Extractor
	Matcher   *match.Matcher
	Logger    *logger.Logger
	Metrics   *metrics.Metrics

	// ForceText flattens tabular documents and reads both sides with the
	// free-text extractor.
	ForceText bool
}

// Service compares documents. It is safe for concurrent use.
type Service struct {
	extractor *extract.Extractor
	matcher   *match.Matcher
	log       *logger.Logger
	metrics   *metrics.Metrics
	forceText bool
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	s := &Service{
		extractor: opts.Extractor,
		matcher:   opts.Matcher,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		forceText: opts.ForceText,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.extractor == nil {
		s.extractor = extract.New(extract.Options{Logger: s.log, Metrics: s.metrics})
	}
	if s.matcher == nil {
		s.matcher = match.New(match.Options{Logger: s.log, Metrics: s.metrics})
	}
	s.log = s.log.WithModule("compare")
	return s
}

// SourceStats describes one side of a comparison.
type SourceStats struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Records int    `json:"records"`
}

// Report is the outcome of one comparison.
type Report struct {
	RunID      string                 `json:"runId"`
	Pipeline   string                 `json:"pipeline"`
	SourceA    SourceStats            `json:"sourceA"`
	SourceB    SourceStats            `json:"sourceB"`
	Exact      int                    `json:"exactMatches"`
	Fuzzy      int                    `json:"fuzzyMatches"`
	Unmatched  int                    `json:"unmatched"`
	CapReached bool                   `json:"capReached"`
	Matches    []comision.MatchResult `json:"matches"`
}

// Compare extracts records from a and b concurrently and matches them. The
// capped pipeline is used when either side is free text. Extraction failures
// only shrink the result; the error is non-nil only when ctx ends first.
func (s *Service) Compare(ctx context.Context, a, b comision.Document) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = ctxutil.WithRunID(ctx, runID)

	var recordsA, recordsB []comision.Record
	statsA := SourceStats{Name: a.DisplayName, Kind: s.kind(a)}
	statsB := SourceStats{Name: b.DisplayName, Kind: s.kind(b)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		recordsA = s.extract(ctxutil.WithSource(gctx, a.DisplayName), a)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		recordsB = s.extract(ctxutil.WithSource(gctx, b.DisplayName), b)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compare %s with %s: %w", a.DisplayName, b.DisplayName, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compare %s with %s: %w", a.DisplayName, b.DisplayName, err)
	}
	statsA.Records = len(recordsA)
	statsB.Records = len(recordsB)

	pipeline := PipelineStandard
	var out match.Outcome
	if statsA.Kind == extract.KindText || statsB.Kind == extract.KindText {
		pipeline = PipelineCapped
		out = s.matcher.MatchCapped(ctx, recordsA, recordsB)
	} else {
		out = s.matcher.Match(ctx, recordsA, recordsB)
	}

	status := "matched"
	if len(out.Results) == 0 {
		status = "empty"
	}
	duration := time.Since(start)
	s.metrics.RecordComparison(pipeline, status, duration.Seconds())

	s.log.InfoContext(ctx, "Comparison finished",
		"pipeline", pipeline,
		"source_a", a.DisplayName,
		"source_b", b.DisplayName,
		"records_a", statsA.Records,
		"records_b", statsB.Records,
		"results", len(out.Results),
		"duration_ms", duration.Milliseconds())

	return &Report{
		RunID:      runID,
		Pipeline:   pipeline,
		SourceA:    statsA,
		SourceB:    statsB,
		Exact:      out.Exact,
		Fuzzy:      out.Fuzzy,
		Unmatched:  out.Unmatched,
		CapReached: out.CapReached,
		Matches:    out.Results,
	}, nil
}

// CompareDocuments compares a and b with default options and returns the
// match results only.
func CompareDocuments(ctx context.Context, a, b comision.Document) ([]comision.MatchResult, error) {
	report, err := defaultService.Compare(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return report.Matches, nil
}

var defaultService = NewService(Options{})

// kind is the extractor a document will go through.
func (s *Service) kind(doc comision.Document) string {
	if doc.IsTabular() && !s.forceText {
		return extract.KindTabular
	}
	return extract.KindText
}

func (s *Service) extract(ctx context.Context, doc comision.Document) []comision.Record {
	switch {
	case s.kind(doc) == extract.KindTabular:
		return s.extractor.Tabular(ctx, doc.DisplayName, doc.Sheets)
	case doc.IsTabular():
		return s.extractor.FreeText(ctx, extract.FlattenSheets(doc.Sheets), doc.DisplayName)
	default:
		return s.extractor.FreeText(ctx, doc.Text, doc.DisplayName)
	}
}
