package comision

// Row is an ordered sequence of raw cell values, already rendered as strings.
// Blank cells are empty strings.
type Row []string

// Sheet is one named table; Rows[0] is the header row.
type Sheet struct {
	Name string
	Rows []Row
}

// Document is the normalized input handed to the core by an adapter.
// Exactly one of Sheets (tabular source) or Text (page-oriented source) is used.
type Document struct {
	DisplayName string
	Sheets      []Sheet
	Text        string
}

// NewTabular builds a tabular document.
func NewTabular(displayName string, sheets ...Sheet) Document {
	return Document{DisplayName: displayName, Sheets: sheets}
}

// NewText builds a free-text document.
func NewText(displayName, text string) Document {
	return Document{DisplayName: displayName, Text: text}
}

// IsTabular reports whether the document carries sheets.
func (d Document) IsTabular() bool {
	return len(d.Sheets) > 0
}
