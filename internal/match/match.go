// Package match pairs records from two sources and merges the pairs.
//
// Matching runs in two phases. The exact phase pairs every record of source A
// with every record of source B sharing its section code. The fuzzy phase runs
// only when the exact phase found nothing and pairs records whose field-level
// similarity score exceeds the threshold.
package match

import (
	"context"

	"github.com/AdrianCGon/centeno-api/internal/comision"
	"github.com/AdrianCGon/centeno-api/internal/logger"
	"github.com/AdrianCGon/centeno-api/internal/metrics"
	"github.com/AdrianCGon/centeno-api/internal/similarity"
	"github.com/AdrianCGon/centeno-api/internal/sliceutil"
)

// Defaults for Options.
const (
	DefaultThreshold    = 70.0
	DefaultMaxPerSource = 50
	DefaultMaxMatches   = 100
)

// Kinds of match results, used in Outcome tallies and metric labels.
const (
	KindExact     = "exact"
	KindFuzzy     = "fuzzy"
	KindUnmatched = "unmatched"
)

// Options configures a Matcher. Zero values select defaults.
type Options struct {
	// Threshold is the record score a fuzzy pair must exceed.
	Threshold float64
	// MaxPerSource limits how many records of each source the capped
	// pipeline considers.
	MaxPerSource int
	// MaxMatches caps the results of the capped pipeline.
	MaxMatches int

	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// Outcome is the result of one matching run.
type Outcome struct {
	Results    []comision.MatchResult
	Exact      int
	Fuzzy      int
	Unmatched  int
	CapReached bool
}

// Matcher pairs records. It holds no per-run state and is safe for
// concurrent use.
type Matcher struct {
	threshold    float64
	maxPerSource int
	maxMatches   int
	log          *logger.Logger
	metrics      *metrics.Metrics
}

// New creates a Matcher.
func New(opts Options) *Matcher {
	m := &Matcher{
		threshold:    opts.Threshold,
		maxPerSource: opts.MaxPerSource,
		maxMatches:   opts.MaxMatches,
		log:          opts.Logger,
		metrics:      opts.Metrics,
	}
	if m.threshold <= 0 {
		m.threshold = DefaultThreshold
	}
	if m.maxPerSource <= 0 {
		m.maxPerSource = DefaultMaxPerSource
	}
	if m.maxMatches <= 0 {
		m.maxMatches = DefaultMaxMatches
	}
	if m.log == nil {
		m.log = logger.Discard()
	}
	m.log = m.log.WithModule("match")
	return m
}

var defaultMatcher = New(Options{})

// MatchRecords runs the standard pipeline with default options.
func MatchRecords(a, b []comision.Record) []comision.MatchResult {
	return defaultMatcher.Match(context.Background(), a, b).Results
}

// Match runs the standard pipeline: all exact pairs, or, when there are
// none, all fuzzy pairs scoring above the threshold. Nothing is capped.
func (m *Matcher) Match(ctx context.Context, a, b []comision.Record) Outcome {
	var out Outcome

	for _, ra := range a {
		for _, rb := range b {
			if !sameCode(ra, rb) {
				continue
			}
			out.Results = append(out.Results, exactResult(ra, rb))
			out.Exact++
		}
	}

	if out.Exact == 0 {
		for _, ra := range a {
			for _, rb := range b {
				score := similarity.RecordScore(ra, rb)
				if score <= m.threshold {
					continue
				}
				out.Results = append(out.Results, comision.MatchResult{
					SectionLabel:    comision.Label(firstCode(ra, rb)),
					RecordA:         Combine(ra, rb),
					RecordB:         rb,
					SimilarityScore: score,
				})
				out.Fuzzy++
			}
		}
	}

	m.finish(ctx, "standard", len(a), len(b), out)
	return out
}

// MatchCapped runs the capped pipeline used for page-oriented sources. Only
// the first MaxPerSource records of each side take part. Exact pairs are
// emitted until MaxMatches is reached, at which point the run stops. Source-A
// records left without a match are then emitted as unmatched placeholders,
// one per label, until the same cap.
func (m *Matcher) MatchCapped(ctx context.Context, a, b []comision.Record) Outcome {
	a = sliceutil.Take(a, m.maxPerSource)
	b = sliceutil.Take(b, m.maxPerSource)

	var out Outcome
	emitted := make(map[string]struct{})

	for _, ra := range a {
		for _, rb := range b {
			if !sameCode(ra, rb) {
				continue
			}
			res := exactResult(ra, rb)
			out.Results = append(out.Results, res)
			out.Exact++
			emitted[res.SectionLabel] = struct{}{}
			if len(out.Results) >= m.maxMatches {
				out.CapReached = true
				m.metrics.RecordMatchCapReached()
				m.finish(ctx, "capped", len(a), len(b), out)
				return out
			}
		}
	}

	label := func(r comision.Record) string { return comision.Label(r.SectionCode) }
	unmatched := sliceutil.Filter(sliceutil.Deduplicate(a, label), func(r comision.Record) bool {
		_, ok := emitted[label(r)]
		return !ok
	})
	for _, ra := range sliceutil.Take(unmatched, m.maxMatches-len(out.Results)) {
		out.Results = append(out.Results, comision.MatchResult{
			SectionLabel:    label(ra),
			RecordA:         ra,
			RecordB:         comision.NoMatchPlaceholder(ra),
			SimilarityScore: 0,
		})
		out.Unmatched++
	}

	m.finish(ctx, "capped", len(a), len(b), out)
	return out
}

func (m *Matcher) finish(ctx context.Context, pipeline string, na, nb int, out Outcome) {
	m.metrics.RecordMatches(KindExact, out.Exact)
	m.metrics.RecordMatches(KindFuzzy, out.Fuzzy)
	m.metrics.RecordMatches(KindUnmatched, out.Unmatched)

	m.log.InfoContext(ctx, "Matching finished",
		"pipeline", pipeline,
		"records_a", na,
		"records_b", nb,
		"exact", out.Exact,
		"fuzzy", out.Fuzzy,
		"unmatched", out.Unmatched,
		"cap_reached", out.CapReached)
}

func exactResult(a, b comision.Record) comision.MatchResult {
	return comision.MatchResult{
		SectionLabel:    comision.Label(a.SectionCode),
		RecordA:         Combine(a, b),
		RecordB:         b,
		SimilarityScore: similarity.ExactPoints,
	}
}

func sameCode(a, b comision.Record) bool {
	return comision.IsPresent(a.SectionCode) && a.SectionCode == b.SectionCode
}

func firstCode(a, b comision.Record) string {
	switch {
	case comision.IsPresent(a.SectionCode):
		return a.SectionCode
	case comision.IsPresent(b.SectionCode):
		return b.SectionCode
	default:
		return comision.UnknownCode
	}
}
