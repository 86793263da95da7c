package extract

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianCGon/centeno-api/internal/comision"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
	"github.com/AdrianCGon/centeno-api/internal/metrics"
)

type failureLog struct {
	mu   sync.Mutex
	errs []*domerrors.ExtractionError
}

func (f *failureLog) report(_ context.Context, err *domerrors.ExtractionError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

func TestFreeText_SingleSection(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"PRIMER CUATRIMESTRE",
		"ABOGACÍA 2025",
		"7024",
		"PRESENCIAL",
		"VIGEVANO MARTA",
		"Lun 14:00",
		"223",
	}, "\n")

	records := ExtractFreeText(context.Background(), text, "oferta.pdf")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "7024", rec.SectionCode)
	assert.Equal(t, "Comisión 7024", rec.Name)
	assert.Equal(t, "oferta.pdf", rec.SourceFile)
	assert.Equal(t, 1, rec.Page)
	assert.Contains(t, rec.Modality, "PRESENCIAL")
	assert.Contains(t, rec.Instructor, "VIGEVANO MARTA")
	assert.Contains(t, rec.Schedule, "Lun 14:00")
	assert.Equal(t, "223", rec.Room)
	assert.Equal(t, "ABOGACÍA 2025", rec.Period)
	assert.Equal(t, comision.NotAvailable, rec.Activity)
	assert.Equal(t, "Comisión: 7024 - PRESENCIAL VIGEVANO MARTA Lun 14:00 223", rec.RawText)
}

func TestFreeText_MultipleSections(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"PRIMER CUATRIMESTRE ABOGACÍA 2025",
		"131 - TEORÍA GENERAL DEL DERECHO",
		"Comisión 66U",
		"PRESENCIAL",
		"ALEGRE-ABAL FEDERICO",
		"Lun 15:30 a 17:00",
		"Aula 12",
		"Comisión 7E9",
		"VIRTUAL",
		"VIGEVANO MARTA",
		"Mie 18:30 a 21:30",
	}, "\r\n")

	records := ExtractFreeText(context.Background(), text, "oferta.pdf")

	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "66U", first.SectionCode)
	assert.Equal(t, "PRIMER CUATRIMESTRE ABOGACÍA 2025", first.Period)
	assert.Equal(t, "131 - TEORÍA GENERAL DEL DERECHO", first.Activity)
	assert.Equal(t, "PRESENCIAL", first.Modality)
	assert.Equal(t, "ALEGRE-ABAL FEDERICO", first.Instructor)
	assert.Equal(t, "Lun 15:30 a 17:00", first.Schedule)
	assert.Equal(t, "Aula 12", first.Room)

	second := records[1]
	assert.Equal(t, "7E9", second.SectionCode)
	assert.Equal(t, "131 - TEORÍA GENERAL DEL DERECHO", second.Activity)
	assert.Equal(t, "VIRTUAL", second.Modality)
	assert.Equal(t, "VIGEVANO MARTA", second.Instructor)
	assert.Equal(t, "Mie 18:30 a 21:30", second.Schedule)
	// Rooms never come from running context.
	assert.Equal(t, comision.NotAvailable, second.Room)
}

func TestFreeText_LineFillsSeveralFields(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"ABOGACÍA 2025",
		"7024",
		"PRESENCIAL Lun 14:00 a 16:00",
		"VIGEVANO MARTA",
		"223",
	}, "\n")

	records := ExtractFreeText(context.Background(), text, "oferta.pdf")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "PRESENCIAL Lun 14:00 a 16:00", rec.Modality)
	assert.Equal(t, "PRESENCIAL Lun 14:00 a 16:00", rec.Schedule)
	assert.Equal(t, "VIGEVANO MARTA", rec.Instructor)
	assert.Equal(t, "223", rec.Room)
	assert.Equal(t, "ABOGACÍA 2025", rec.Period)
}

func TestFreeText_BackwardLineFillsSeveralFields(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Virtual Mie 18:30",
		"Comisión 66U",
		"ALEGRE-ABAL FEDERICO",
	}, "\n")

	records := ExtractFreeText(context.Background(), text, "b.txt")

	require.Len(t, records, 1)
	assert.Equal(t, "Virtual Mie 18:30", records[0].Modality)
	assert.Equal(t, "Virtual Mie 18:30", records[0].Schedule)
}

func TestFreeText_BackwardScan(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Modalidad: Presencial",
		"Modalidad: Virtual",
		"Mar 10:00 a 12:00",
		"VIGEVANO MARTA",
		"Comisión 0508",
	}, "\n")

	records := ExtractFreeText(context.Background(), text, "b.txt")

	require.Len(t, records, 1)
	assert.Equal(t, "0508", records[0].SectionCode)
	// The earliest line in the backward window wins over the running context.
	assert.Equal(t, "Modalidad: Presencial", records[0].Modality)
	assert.Equal(t, "Mar 10:00 a 12:00", records[0].Schedule)
	assert.Equal(t, "VIGEVANO MARTA", records[0].Instructor)
}

func TestFreeText_DiscardsCodeWithoutContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractFreeText(context.Background(), "7024\n\n", "a.txt"))
	assert.Empty(t, ExtractFreeText(context.Background(), "Comisión 66U\nComisión 7E9", "a.txt"))
}

func TestFreeText_WindowBounds(t *testing.T) {
	t.Parallel()

	lines := []string{"7024"}
	for range 5 {
		lines = append(lines, "")
	}
	lines = append(lines, "PRESENCIAL")

	ex := New(Options{ForwardWindow: 3})
	assert.Empty(t, ex.FreeText(context.Background(), strings.Join(lines, "\n"), "a.txt"),
		"modality beyond the forward window must not be picked up")

	ex = New(Options{ForwardWindow: 6})
	records := ex.FreeText(context.Background(), strings.Join(lines, "\n"), "a.txt")
	require.Len(t, records, 1)
	assert.Equal(t, "PRESENCIAL", records[0].Modality)
}

func TestFreeText_Windows1252(t *testing.T) {
	t.Parallel()

	text := "ABOGAC\xcdA 2025\n7024\nPRESENCIAL\n"

	records := ExtractFreeText(context.Background(), text, "legacy.txt")

	require.Len(t, records, 1)
	assert.Equal(t, "ABOGACÍA 2025", records[0].Period)
}

func TestFreeText_Unparseable(t *testing.T) {
	t.Parallel()

	failures := &failureLog{}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ex := New(Options{OnFailure: failures.report, Metrics: m})

	records := ex.FreeText(context.Background(), "7024\x00\x01PRESENCIAL", "scan.pdf")

	assert.Empty(t, records)
	require.Len(t, failures.errs, 1)
	assert.Equal(t, "scan.pdf", failures.errs[0].Source)
	assert.True(t, errors.Is(failures.errs[0], domerrors.ErrUnparseableSource))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionFailuresTotal.WithLabelValues(KindText, "unparseable")))
}

func TestFreeText_Empty(t *testing.T) {
	t.Parallel()

	failures := &failureLog{}
	ex := New(Options{OnFailure: failures.report})

	assert.Empty(t, ex.FreeText(context.Background(), " \n\n", "empty.txt"))
	require.Len(t, failures.errs, 1)
	assert.True(t, errors.Is(failures.errs[0], domerrors.ErrEmptySource))
}

func TestScanContext(t *testing.T) {
	t.Parallel()

	var s ScanContext
	next := s.With(comision.Modality, "PRESENCIAL").With(comision.Room, "Aula 12")

	assert.Equal(t, "", s.Get(comision.Modality), "With must not mutate the receiver")
	assert.Equal(t, "PRESENCIAL", next.Get(comision.Modality))
	assert.Equal(t, "", next.Get(comision.Room))
}
