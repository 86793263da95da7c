package extract

import (
	"strings"

	"github.com/AdrianCGon/centeno-api/internal/comision"
)

// FlattenSheets renders every sheet as text so a tabular document can be fed
// to FreeText: one line per non-empty row, cells joined by a space, sheets in
// order.
func FlattenSheets(sheets []comision.Sheet) string {
	var b strings.Builder
	for _, sheet := range sheets {
		for _, row := range sheet.Rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				if cell = strings.TrimSpace(cell); cell != "" {
					cells = append(cells, cell)
				}
			}
			if len(cells) == 0 {
				continue
			}
			b.WriteString(strings.Join(cells, " "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
