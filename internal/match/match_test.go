package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianCGon/centeno-api/internal/comision"
	"github.com/AdrianCGon/centeno-api/internal/metrics"
)

// rec builds a record with every semantic field N/A except the code.
func rec(code string) comision.Record {
	return comision.Record{
		Name:        comision.Label(code),
		SourceFile:  "test",
		Page:        1,
		RawText:     code,
		Period:      comision.NotAvailable,
		Activity:    comision.NotAvailable,
		SectionCode: code,
		Modality:    comision.NotAvailable,
		Instructor:  comision.NotAvailable,
		Schedule:    comision.NotAvailable,
		Room:        comision.NotAvailable,
	}
}

func records(prefix string, n int) []comision.Record {
	out := make([]comision.Record, n)
	for i := range out {
		out[i] = rec(fmt.Sprintf("%s%03d", prefix, i))
	}
	return out
}

func TestMatchRecords_ExactCombinesRoom(t *testing.T) {
	t.Parallel()

	rooms := rec("7024")
	rooms.Room = "Aula 12"
	offer := rec("7024")
	offer.Modality = "PRESENCIAL"
	offer.Instructor = "VIGEVANO MARTA"

	tests := []struct {
		name string
		a, b comision.Record
	}{
		{"room on source A", rooms, offer},
		{"room on source B", offer, rooms},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := MatchRecords([]comision.Record{tt.a}, []comision.Record{tt.b})

			require.Len(t, results, 1)
			res := results[0]
			assert.Equal(t, "Comisión 7024", res.SectionLabel)
			assert.Equal(t, 100.0, res.SimilarityScore)
			assert.Equal(t, "Aula 12", res.RecordA.Room)
			assert.Equal(t, "PRESENCIAL", res.RecordA.Modality)
			assert.Equal(t, "VIGEVANO MARTA", res.RecordA.Instructor)
			assert.Equal(t, tt.b, res.RecordB)
		})
	}
}

func TestMatchRecords_ExactIsCrossProduct(t *testing.T) {
	t.Parallel()

	a := []comision.Record{rec("7024"), rec("6007"), rec("7024")}
	b := []comision.Record{rec("7024"), rec("9999")}

	results := MatchRecords(a, b)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "Comisión 7024", r.SectionLabel)
	}
}

func fuzzyPair() (comision.Record, comision.Record) {
	a := rec("6007")
	a.Activity = "TEORÍA GENERAL DEL DERECHO"
	a.Modality = "PRESENCIAL"
	a.Instructor = "VIGEVANO MARTA"

	b := rec("6008")
	b.Activity = "TEORÍA GENERAL DEL DERECHO"
	b.Modality = "Presencial"
	b.Instructor = "VIGEVANO M."
	b.Room = "223"
	return a, b
}

func TestMatch_FuzzyFallback(t *testing.T) {
	t.Parallel()

	a, b := fuzzyPair()
	out := New(Options{}).Match(context.Background(), []comision.Record{a}, []comision.Record{b})

	require.Len(t, out.Results, 1)
	assert.Equal(t, 1, out.Fuzzy)
	assert.Zero(t, out.Exact)

	res := out.Results[0]
	assert.Equal(t, "Comisión 6007", res.SectionLabel)
	assert.InDelta(t, 280.0/3, res.SimilarityScore, 1e-9)
	assert.Equal(t, "6007", res.RecordA.SectionCode)
	assert.Equal(t, "223", res.RecordA.Room)
}

func TestMatch_FuzzyThreshold(t *testing.T) {
	t.Parallel()

	a, b := fuzzyPair()
	out := New(Options{Threshold: 95}).Match(context.Background(), []comision.Record{a}, []comision.Record{b})
	assert.Empty(t, out.Results)
}

func TestMatch_FuzzyLabelFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	a, b := fuzzyPair()
	a.SectionCode = comision.NotAvailable
	b.SectionCode = comision.NotAvailable

	results := MatchRecords([]comision.Record{a}, []comision.Record{b})
	require.Len(t, results, 1)
	assert.Equal(t, "Comisión Desconocida", results[0].SectionLabel)
}

func TestMatch_ExactSuppressesFuzzy(t *testing.T) {
	t.Parallel()

	fa, fb := fuzzyPair()
	a := []comision.Record{rec("7024"), fa}
	b := []comision.Record{rec("7024"), fb}

	out := New(Options{}).Match(context.Background(), a, b)

	require.Len(t, out.Results, 1)
	assert.Equal(t, 1, out.Exact)
	assert.Zero(t, out.Fuzzy)
	assert.Equal(t, "Comisión 7024", out.Results[0].SectionLabel)
}

func TestMatch_NoMatches(t *testing.T) {
	t.Parallel()

	assert.Empty(t, MatchRecords(records("A", 3), records("B", 3)))
	assert.Empty(t, MatchRecords(nil, records("B", 3)))
}

func TestMatchCapped_PlaceholdersBoundedByCap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       Options
		wantPlaces int
	}{
		{"defaults", Options{}, DefaultMaxPerSource},
		{"small cap", Options{MaxMatches: 10}, 10},
		{"wide sources", Options{MaxPerSource: 60}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := New(tt.opts).MatchCapped(context.Background(), records("A", 60), records("B", 60))

			assert.Zero(t, out.Exact)
			assert.Equal(t, tt.wantPlaces, out.Unmatched)
			assert.Len(t, out.Results, tt.wantPlaces)
			assert.LessOrEqual(t, len(out.Results), DefaultMaxMatches)
			for _, r := range out.Results {
				assert.Zero(t, r.SimilarityScore)
				assert.Equal(t, comision.NoMatchName, r.RecordB.Name)
				assert.Equal(t, r.RecordA.SectionCode, r.RecordB.SectionCode)
			}
		})
	}
}

func TestMatchCapped_StopsAtCap(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	a := []comision.Record{rec("7024"), rec("7024"), rec("7024"), rec("6007")}
	b := []comision.Record{rec("7024"), rec("7024")}

	out := New(Options{MaxMatches: 4, Metrics: m}).MatchCapped(context.Background(), a, b)

	assert.True(t, out.CapReached)
	assert.Len(t, out.Results, 4)
	assert.Equal(t, 4, out.Exact)
	assert.Zero(t, out.Unmatched, "no placeholders once the cap stops the run")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MatchCapReachedTotal))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.MatchesTotal.WithLabelValues(KindExact)))
}

func TestMatchCapped_PlaceholdersDedupedByLabel(t *testing.T) {
	t.Parallel()

	roomed := rec("6007")
	roomed.Room = "Aula 3"
	a := []comision.Record{rec("7024"), roomed, rec("6007"), rec("7024")}
	b := []comision.Record{rec("7024")}

	out := New(Options{}).MatchCapped(context.Background(), a, b)

	require.Len(t, out.Results, 3)
	assert.Equal(t, 2, out.Exact)
	assert.Equal(t, 1, out.Unmatched)

	placeholder := out.Results[2]
	assert.Equal(t, "Comisión 6007", placeholder.SectionLabel)
	assert.Equal(t, roomed, placeholder.RecordA)
	assert.Equal(t, comision.NoMatchPlaceholder(roomed), placeholder.RecordB)
	assert.Equal(t, "Aula 3", placeholder.RecordB.Room)
}

func TestMatchCapped_OnlyFirstRecordsPerSource(t *testing.T) {
	t.Parallel()

	a := append(records("A", 3), rec("7024"))
	b := []comision.Record{rec("7024")}

	out := New(Options{MaxPerSource: 3}).MatchCapped(context.Background(), a, b)

	assert.Zero(t, out.Exact, "the fourth record of A is outside the window")
	assert.Equal(t, 3, out.Unmatched)
}
