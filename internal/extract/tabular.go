package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/AdrianCGon/centeno-api/internal/classify"
	"github.com/AdrianCGon/centeno-api/internal/comision"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
	"github.com/AdrianCGon/centeno-api/internal/stringutil"
)

// headerKeyword marks the section-code column in a header row, compared
// without case or accents.
const headerKeyword = "comision"

// ExtractTabular extracts records from sheets with default options.
func ExtractTabular(ctx context.Context, sheets []comision.Sheet) []comision.Record {
	return defaultExtractor.Tabular(ctx, "", sheets)
}

// Tabular extracts one record per qualifying data row of every sheet.
// source names the document in logs and failure reports.
func (e *Extractor) Tabular(ctx context.Context, source string, sheets []comision.Sheet) []comision.Record {
	start := time.Now()

	if len(sheets) == 0 {
		e.fail(ctx, KindTabular, domerrors.NewExtractionError(source, "", domerrors.ErrEmptySource))
		e.metrics.RecordExtraction(KindTabular, 0, time.Since(start).Seconds())
		return nil
	}

	var records []comision.Record
	for _, sheet := range sheets {
		records = append(records, e.sheet(ctx, source, sheet)...)
	}

	e.metrics.RecordExtraction(KindTabular, len(records), time.Since(start).Seconds())
	e.log.InfoContext(ctx, "Tabular extraction finished",
		"sheets", len(sheets),
		"records", len(records))
	return records
}

// sheet extracts one sheet. Any failure, including a panic, drops the whole
// sheet.
func (e *Extractor) sheet(ctx context.Context, source string, sheet comision.Sheet) (records []comision.Record) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			e.fail(ctx, KindTabular, domerrors.NewExtractionError(source, sheet.Name,
				fmt.Errorf("%w: %v", errPanic, r)))
		}
	}()

	if len(sheet.Rows) == 0 {
		return nil
	}

	header, err := decodeRow(sheet.Rows[0])
	if err != nil {
		e.fail(ctx, KindTabular, domerrors.NewExtractionError(source, sheet.Name, fmt.Errorf("header: %w", err)))
		return nil
	}
	codeCol := findCodeColumn(header)
	if codeCol >= 0 {
		e.log.DebugContext(ctx, "Section-code column found",
			"sheet", sheet.Name,
			"column", codeCol,
			"header", header[codeCol])
	}

	for i := 1; i < len(sheet.Rows); i++ {
		row, err := decodeRow(sheet.Rows[i])
		if err != nil {
			e.fail(ctx, KindTabular, domerrors.NewExtractionError(source, sheet.Name, fmt.Errorf("row %d: %w", i+1, err)))
			return nil
		}
		if rec, ok := e.row(sheet.Name, i, row, codeCol); ok {
			records = append(records, rec)
		}
	}
	return records
}

// row builds the record for one data row. The known code column is tried
// first; otherwise the first cell shaped like a section code anchors the row.
func (e *Extractor) row(sheetName string, index int, row []string, codeCol int) (comision.Record, bool) {
	if len(row) == 0 {
		return comision.Record{}, false
	}

	anchor, code := -1, ""
	if codeCol >= 0 && codeCol < len(row) {
		if c, ok := classify.ExtractSectionCode(stringutil.Normalize(row[codeCol])); ok {
			anchor, code = codeCol, c
		}
	}
	if anchor < 0 {
		for j, cell := range row {
			v := stringutil.Normalize(cell)
			if !classify.IsSectionCode(v) {
				continue
			}
			if c, ok := classify.ExtractSectionCode(v); ok {
				anchor, code = j, c
				break
			}
		}
	}
	if anchor < 0 {
		return comision.Record{}, false
	}

	fields := e.rows.Row(row, anchor)
	sectionCode := fields.Get(comision.SectionCode)
	if !comision.IsPresent(sectionCode) {
		sectionCode = code
	}

	description := comision.NoDescription
	if activity := fields.Get(comision.Activity); comision.IsPresent(activity) {
		description = activity
	}

	rec := comision.Record{
		Name:        comision.Label(code),
		SourceFile:  sheetName,
		Page:        index + 1,
		RawText:     code + " - " + description,
		Period:      fields.Get(comision.Period),
		Activity:    fields.Get(comision.Activity),
		SectionCode: sectionCode,
		Modality:    fields.Get(comision.Modality),
		Instructor:  fields.Get(comision.Instructor),
		Schedule:    fields.Get(comision.Schedule),
		Room:        fields.Get(comision.Room),
	}
	e.rows.AuditMissing(rec)
	return rec, true
}

// findCodeColumn returns the index of the first header cell mentioning
// "comisión", or -1.
func findCodeColumn(header []string) int {
	for i, cell := range header {
		if stringutil.ContainsFold(cell, headerKeyword) {
			return i
		}
	}
	return -1
}
