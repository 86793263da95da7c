package extract

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	domerrors "github.com/AdrianCGon/centeno-api/internal/errors"
)

// decode returns s as valid UTF-8. Text that is not UTF-8 is read as
// Windows-1252, the encoding of most legacy spreadsheet and PDF exports.
// NUL bytes mean binary content and make s unparseable.
func decode(s string) (string, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return "", fmt.Errorf("%w: binary content", domerrors.ErrUnparseableSource)
	}
	if utf8.ValidString(s) {
		return s, nil
	}
	out, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domerrors.ErrUnparseableSource, err)
	}
	return out, nil
}

// decodeRow decodes every cell, copying the row only when a cell changes.
func decodeRow(row []string) ([]string, error) {
	var out []string
	for i, cell := range row {
		decoded, err := decode(cell)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		if decoded != cell && out == nil {
			out = slices.Clone(row)
		}
		if out != nil {
			out[i] = decoded
		}
	}
	if out == nil {
		return row, nil
	}
	return out, nil
}
