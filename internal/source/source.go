// Package source turns files on disk into comision.Documents.
//
// The file kind is chosen by extension: .csv and .tsv become one tabular
// sheet, .xlsx one sheet per worksheet, .txt free text. Any of them may be
// compressed with gzip (.gz) or zstd (.zst).
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"

	"github.com/AdrianCGon/centeno-api/internal/comision"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
)

// Formats lists the accepted file kinds, for help and error messages.
const Formats = ".csv, .tsv, .xlsx or .txt, optionally .gz or .zst"

// MaxSize caps the decompressed size of one input.
const MaxSize = 64 << 20

const utf8BOM = "\ufeff"

type kind int

const (
	kindCSV kind = iota
	kindTSV
	kindXLSX
	kindText
)

// Load reads the file at path.
func Load(ctx context.Context, path string) (comision.Document, error) {
	w := domerrors.NewWrapper("source", "load")
	if err := ctx.Err(); err != nil {
		return comision.Document{}, w.Wrap(err, "load cancelled")
	}

	f, err := os.Open(path)
	if err != nil {
		return comision.Document{}, w.Wrapf(err, "cannot open %s", path)
	}
	defer func() { _ = f.Close() }()

	return Read(ctx, filepath.Base(path), f)
}

// Read reads a document named name from r. name decides the format and
// becomes the document's display name.
func Read(ctx context.Context, name string, r io.Reader) (comision.Document, error) {
	w := domerrors.NewWrapper("source", "read")

	k, compression, err := detect(name)
	if err != nil {
		return comision.Document{}, w.Wrapf(err, "cannot read %s", name)
	}

	rc, err := decompress(r, compression)
	if err != nil {
		return comision.Document{}, w.Wrapf(err, "cannot decompress %s", name)
	}
	defer func() { _ = rc.Close() }()

	data, err := readLimited(rc)
	if err != nil {
		return comision.Document{}, w.Wrapf(err, "cannot read %s", name)
	}
	if err := ctx.Err(); err != nil {
		return comision.Document{}, w.Wrap(err, "read cancelled")
	}

	switch k {
	case kindText:
		return comision.NewText(name, string(data)), nil
	case kindXLSX:
		sheets, err := readWorkbook(data)
		if err != nil {
			return comision.Document{}, w.Wrapf(err, "cannot parse %s", name)
		}
		return comision.NewTabular(name, sheets...), nil
	default:
		comma := ','
		if k == kindTSV {
			comma = '\t'
		}
		sheet, err := readSheet(sheetName(name), data, comma)
		if err != nil {
			return comision.Document{}, w.Wrapf(err, "cannot parse %s", name)
		}
		return comision.NewTabular(name, sheet), nil
	}
}

// detect returns the document kind and compression suffix of name.
func detect(name string) (kind, string, error) {
	lower := strings.ToLower(name)
	compression := ""
	for _, ext := range []string{".gz", ".zst"} {
		if strings.HasSuffix(lower, ext) {
			compression = ext
			lower = strings.TrimSuffix(lower, ext)
			break
		}
	}

	switch filepath.Ext(lower) {
	case ".csv":
		return kindCSV, compression, nil
	case ".tsv":
		return kindTSV, compression, nil
	case ".xlsx":
		return kindXLSX, compression, nil
	case ".txt":
		return kindText, compression, nil
	default:
		return 0, "", fmt.Errorf("%w: %q", domerrors.ErrUnsupportedFormat, filepath.Ext(lower))
	}
}

func decompress(r io.Reader, compression string) (io.ReadCloser, error) {
	switch compression {
	case ".gz":
		return gzip.NewReader(r)
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", domerrors.ErrInvalidInput, MaxSize)
	}
	return data, nil
}

// readSheet parses delimited data into one sheet. Rows may have different
// lengths and stray quotes are kept as text.
func readSheet(name string, data []byte, comma rune) (comision.Sheet, error) {
	cr := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM)))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return comision.Sheet{}, fmt.Errorf("%w: %v", domerrors.ErrUnparseableSource, err)
	}

	rows := make([]comision.Row, len(records))
	for i, rec := range records {
		rows[i] = comision.Row(rec)
	}
	return comision.Sheet{Name: name, Rows: rows}, nil
}

// readWorkbook returns every worksheet with its cells rendered as displayed.
func readWorkbook(data []byte) ([]comision.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrUnparseableSource, err)
	}
	defer func() { _ = f.Close() }()

	return readSheets(f, f.GetSheetList())
}

// rowReader is the part of *excelize.File that readSheets needs.
type rowReader interface {
	GetRows(sheet string, opts ...excelize.Options) ([][]string, error)
}

// readSheets reads the named worksheets in order. A worksheet that cannot be
// read fails the whole workbook.
func readSheets(f rowReader, names []string) ([]comision.Sheet, error) {
	sheets := make([]comision.Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", domerrors.ErrUnparseableSource, name, err)
		}
		sheet := comision.Sheet{Name: name, Rows: make([]comision.Row, len(rows))}
		for i, row := range rows {
			sheet.Rows[i] = comision.Row(row)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// sheetName strips every extension: "aulas.csv.gz" is sheet "aulas".
func sheetName(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
