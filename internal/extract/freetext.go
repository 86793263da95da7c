package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AdrianCGon/centeno-api/internal/classify"
	"github.com/AdrianCGon/centeno-api/internal/comision"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
	"github.com/AdrianCGon/centeno-api/internal/stringutil"
)

// placeholderValue is a layout artifact of some PDF exports where the
// "Comisión" and "Aula" column headers are glued together. It carries no
// information.
const placeholderValue = "ComisiónAula"

// textPage is the page reported for free-text records.
const textPage = 1

// ScanContext holds the most recent value seen for each context category
// while scanning lines top to bottom. Room is not tracked: a room belongs
// only to the code it follows.
type ScanContext struct {
	Period     string
	Activity   string
	Modality   string
	Instructor string
	Schedule   string
}

// With returns a copy of s with category c set to v. Categories outside the
// context are ignored.
func (s ScanContext) With(c comision.Category, v string) ScanContext {
	switch c {
	case comision.Period:
		s.Period = v
	case comision.Activity:
		s.Activity = v
	case comision.Modality:
		s.Modality = v
	case comision.Instructor:
		s.Instructor = v
	case comision.Schedule:
		s.Schedule = v
	}
	return s
}

// Get returns the context value for c, or the empty string.
func (s ScanContext) Get(c comision.Category) string {
	switch c {
	case comision.Period:
		return s.Period
	case comision.Activity:
		return s.Activity
	case comision.Modality:
		return s.Modality
	case comision.Instructor:
		return s.Instructor
	case comision.Schedule:
		return s.Schedule
	default:
		return ""
	}
}

// ExtractFreeText extracts records from text with default options.
func ExtractFreeText(ctx context.Context, text, filename string) []comision.Record {
	return defaultExtractor.FreeText(ctx, text, filename)
}

// FreeText scans text line by line. Each section-code line opens a window
// of following and preceding lines from which the record's fields are taken;
// fields the window does not supply fall back to the running ScanContext.
func (e *Extractor) FreeText(ctx context.Context, text, filename string) (records []comision.Record) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			records = nil
			e.fail(ctx, KindText, domerrors.NewExtractionError(filename, "", fmt.Errorf("%w: %v", errPanic, r)))
		}
		e.metrics.RecordExtraction(KindText, len(records), time.Since(start).Seconds())
	}()

	decoded, err := decode(text)
	if err != nil {
		e.fail(ctx, KindText, domerrors.NewExtractionError(filename, "", err))
		return nil
	}
	lines := splitLines(decoded)
	if len(lines) == 0 {
		e.fail(ctx, KindText, domerrors.NewExtractionError(filename, "", domerrors.ErrEmptySource))
		return nil
	}

	s := &scan{
		lines:    lines,
		consumed: make([]bool, len(lines)),
		forward:  e.forward,
		backward: e.backward,
	}
	var running ScanContext
	for i, line := range lines {
		if line == "" {
			continue
		}
		if c := classify.ContextLine(line); c != comision.Unclassified {
			running = running.With(c, line)
			continue
		}
		if s.consumed[i] || classify.IsRoomHeading(line) {
			continue
		}
		code, ok := classify.LineSectionCode(line)
		if !ok {
			continue
		}
		rec, ok := s.record(i, code, running, filename)
		if !ok {
			e.log.DebugContext(ctx, "Section code without context discarded", "code", code, "line", i+1)
			continue
		}
		records = append(records, rec)
	}

	e.log.InfoContext(ctx, "Free-text extraction finished",
		"lines", len(lines),
		"records", len(records))
	return records
}

// scan is the per-call state of one free-text extraction.
type scan struct {
	lines    []string
	consumed []bool
	forward  int
	backward int
}

// record assembles the record anchored at line i. It reports false when the
// code is too short or nothing but the code was found.
func (s *scan) record(i int, code string, running ScanContext, filename string) (comision.Record, bool) {
	found := make(map[comision.Category]string, len(comision.ContextCategories))
	var snippet []string

	last := min(i+s.forward, len(s.lines)-1)
	for j := i + 1; j <= last; j++ {
		line := s.lines[j]
		if line == "" || classify.StartsWithFourDigits(line) {
			continue
		}
		snippet = append(snippet, line)
		for _, c := range classify.WindowLine(line, code) {
			if _, ok := found[c]; !ok {
				found[c] = line
				s.consumed[j] = true
			}
		}
	}

	for j := max(0, i-s.backward); j < i; j++ {
		line := s.lines[j]
		if line == "" || s.consumed[j] || classify.StartsWithFourDigits(line) {
			continue
		}
		for _, c := range classify.WindowLine(line, code) {
			if c != comision.Modality && c != comision.Schedule {
				continue
			}
			if _, ok := found[c]; !ok {
				found[c] = line
			}
		}
	}

	field := func(c comision.Category) string {
		if v, ok := found[c]; ok {
			return v
		}
		return comision.OrNA(running.Get(c))
	}

	rec := comision.Record{
		Name:        comision.Label(code),
		SourceFile:  filename,
		Page:        textPage,
		RawText:     strings.TrimSpace("Comisión: " + code + " - " + strings.Join(snippet, " ")),
		Period:      field(comision.Period),
		Activity:    field(comision.Activity),
		SectionCode: code,
		Modality:    field(comision.Modality),
		Instructor:  field(comision.Instructor),
		Schedule:    field(comision.Schedule),
		Room:        field(comision.Room),
	}
	if stringutil.RuneLen(code) < 2 || !hasUsefulContext(rec) {
		return comision.Record{}, false
	}
	return rec, true
}

func hasUsefulContext(r comision.Record) bool {
	for _, c := range comision.ContextCategories {
		if v := r.Field(c); comision.IsPresent(v) && v != placeholderValue {
			return true
		}
	}
	return false
}

// splitLines splits text into NFKC-normalized, trimmed lines. Trailing
// blank lines are dropped; an all-blank text yields no lines.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	last := -1
	for i, l := range raw {
		lines[i] = stringutil.Normalize(l)
		if lines[i] != "" {
			last = i
		}
	}
	return lines[:last+1]
}
