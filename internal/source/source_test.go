package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AdrianCGon/centeno-api/internal/comision"
	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
)

const aulasCSV = "\ufeffComisión,Aula\n7024,Aula 12\n6007\n"

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer func() { _ = enc.Close() }()
	return enc.EncodeAll([]byte(s), nil)
}

func TestRead_Formats(t *testing.T) {
	t.Parallel()

	wantSheet := comision.Sheet{
		Name: "aulas",
		Rows: []comision.Row{{"Comisión", "Aula"}, {"7024", "Aula 12"}, {"6007"}},
	}

	tests := []struct {
		name      string
		file      string
		data      func(t *testing.T) []byte
		wantSheet *comision.Sheet
		wantText  string
	}{
		{
			name:      "csv",
			file:      "aulas.csv",
			data:      func(*testing.T) []byte { return []byte(aulasCSV) },
			wantSheet: &wantSheet,
		},
		{
			name:      "tsv",
			file:      "aulas.TSV",
			data:      func(*testing.T) []byte { return []byte(strings.ReplaceAll(aulasCSV, ",", "\t")) },
			wantSheet: &wantSheet,
		},
		{
			name:      "gzip csv",
			file:      "aulas.csv.gz",
			data:      func(t *testing.T) []byte { return gzipped(t, aulasCSV) },
			wantSheet: &wantSheet,
		},
		{
			name:      "zstd csv",
			file:      "aulas.csv.zst",
			data:      func(t *testing.T) []byte { return zstded(t, aulasCSV) },
			wantSheet: &wantSheet,
		},
		{
			name:     "text",
			file:     "oferta.txt",
			data:     func(*testing.T) []byte { return []byte("7024\nPRESENCIAL\n") },
			wantText: "7024\nPRESENCIAL\n",
		},
		{
			name:     "gzip text",
			file:     "oferta.txt.gz",
			data:     func(t *testing.T) []byte { return gzipped(t, "7024\n") },
			wantText: "7024\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := Read(context.Background(), tt.file, bytes.NewReader(tt.data(t)))
			require.NoError(t, err)
			assert.Equal(t, tt.file, doc.DisplayName)

			if tt.wantSheet != nil {
				require.True(t, doc.IsTabular())
				require.Len(t, doc.Sheets, 1)
				assert.Equal(t, *tt.wantSheet, doc.Sheets[0])
				return
			}
			assert.False(t, doc.IsTabular())
			assert.Equal(t, tt.wantText, doc.Text)
		})
	}
}

func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Comisión", "Aula"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"7024", "Aula 12"}))
	_, err := f.NewSheet("Oferta")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Oferta", "A1", &[]any{"Comisión", "Modalidad"}))
	require.NoError(t, f.SetSheetRow("Oferta", "A2", &[]any{"6007", "Virtual"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRead_Workbook(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"aulas.xlsx", "aulas.xlsx.gz"} {
		data := workbook(t)
		if name == "aulas.xlsx.gz" {
			data = gzipped(t, string(data))
		}

		doc, err := Read(context.Background(), name, bytes.NewReader(data))
		require.NoError(t, err, name)
		require.Len(t, doc.Sheets, 2)
		assert.Equal(t, comision.Sheet{
			Name: "Sheet1",
			Rows: []comision.Row{{"Comisión", "Aula"}, {"7024", "Aula 12"}},
		}, doc.Sheets[0])
		assert.Equal(t, "Oferta", doc.Sheets[1].Name)
		assert.Equal(t, comision.Row{"6007", "Virtual"}, doc.Sheets[1].Rows[1])
	}
}

func TestRead_CorruptWorkbook(t *testing.T) {
	t.Parallel()

	_, err := Read(context.Background(), "aulas.xlsx", strings.NewReader("PK not a zip"))
	require.Error(t, err)
	assert.True(t, domerrors.IsUnparseable(err))
	assert.Equal(t, "cannot parse aulas.xlsx", domerrors.GetUserMessage(err))
}

type brokenSheets map[string]error

func (b brokenSheets) GetRows(sheet string, _ ...excelize.Options) ([][]string, error) {
	if err := b[sheet]; err != nil {
		return nil, err
	}
	return [][]string{{"Comisión"}, {"7024"}}, nil
}

func TestReadSheets(t *testing.T) {
	t.Parallel()

	sheets, err := readSheets(brokenSheets{}, []string{"Hoja1", "Hoja2"})
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, comision.Sheet{Name: "Hoja2", Rows: []comision.Row{{"Comisión"}, {"7024"}}}, sheets[1])

	_, err = readSheets(brokenSheets{"Hoja2": errors.New("bad xml")}, []string{"Hoja1", "Hoja2"})
	require.Error(t, err)
	assert.True(t, domerrors.IsUnparseable(err))
	assert.Contains(t, err.Error(), `sheet "Hoja2"`)
	assert.Contains(t, err.Error(), "bad xml")
}

func TestRead_LazyQuotes(t *testing.T) {
	t.Parallel()

	doc, err := Read(context.Background(), "a.csv", strings.NewReader("Comisión,Materia\n7024,Taller \"práctico\n"))
	require.NoError(t, err)
	assert.Equal(t, comision.Row{"7024", "Taller \"práctico"}, doc.Sheets[0].Rows[1])
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	_, err := Read(context.Background(), "oferta.pdf", strings.NewReader("%PDF"))
	require.Error(t, err)
	assert.True(t, domerrors.IsUnsupportedFormat(err))
	assert.Equal(t, "cannot read oferta.pdf", domerrors.GetUserMessage(err))

	_, err = Read(context.Background(), "aulas.csv.gz", strings.NewReader("not gzip"))
	require.Error(t, err)
	assert.Equal(t, "cannot decompress aulas.csv.gz", domerrors.GetUserMessage(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Read(ctx, "a.txt", strings.NewReader("7024"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "aulas.csv")
	require.NoError(t, os.WriteFile(path, []byte(aulasCSV), 0o600))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "aulas.csv", doc.DisplayName)
	assert.Equal(t, "aulas", doc.Sheets[0].Name)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSheetName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "aulas", sheetName("aulas.csv.gz"))
	assert.Equal(t, "aulas", sheetName("aulas"))
	assert.Equal(t, ".hidden", sheetName(".hidden"))
}
