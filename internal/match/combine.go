package match

import "github.com/AdrianCGon/centeno-api/internal/comision"

// Combine merges two records describing the same section. Each field takes
// a's value when it carries information and b's otherwise.
func Combine(a, b comision.Record) comision.Record {
	page := a.Page
	if page == 0 {
		page = b.Page
	}
	return comision.Record{
		Name:        orElse(a.Name, b.Name),
		SourceFile:  orElse(a.SourceFile, b.SourceFile),
		Page:        page,
		RawText:     orElse(a.RawText, b.RawText),
		Period:      orElse(a.Period, b.Period),
		Activity:    orElse(a.Activity, b.Activity),
		SectionCode: orElse(a.SectionCode, b.SectionCode),
		Modality:    orElse(a.Modality, b.Modality),
		Instructor:  orElse(a.Instructor, b.Instructor),
		Schedule:    orElse(a.Schedule, b.Schedule),
		Room:        orElse(a.Room, b.Room),
	}
}

func orElse(a, b string) string {
	if comision.IsPresent(a) {
		return a
	}
	return b
}
