// Package comision defines the class-section ("comisión") records mined from
// scheduling documents and the cross-document match results built from them.
package comision

import "strings"

// NotAvailable marks a field that was not classified or found in the source.
// It is distinct from the empty string.
const NotAvailable = "N/A"

// Display strings used when building labels and audit snippets.
const (
	labelPrefix   = "Comisión "
	UnknownCode   = "Desconocida"
	NoDescription = "Sin descripción"
	NoMatchName   = "Sin coincidencia"
	NoMatchText   = "No se encontró coincidencia"
)

// Record is one class-section entry discovered in a source document.
// SectionCode is always non-empty; every other semantic field is either a
// classified value or NotAvailable.
type Record struct {
	Name       string `json:"name"`
	SourceFile string `json:"sourceFile"`
	Page       int    `json:"page"`
	RawText    string `json:"rawText"`

	Period      string `json:"period"`
	Activity    string `json:"activity"`
	SectionCode string `json:"sectionCode"`
	Modality    string `json:"modality"`
	Instructor  string `json:"instructor"`
	Schedule    string `json:"schedule"`
	Room        string `json:"room"`
}

// MatchResult pairs a record from source A with one from source B.
// RecordA holds the combined record for real matches; unmatched entries carry
// a zero score and a placeholder RecordB.
type MatchResult struct {
	SectionLabel    string  `json:"sectionLabel"`
	RecordA         Record  `json:"recordFromSourceA"`
	RecordB         Record  `json:"recordFromSourceB"`
	SimilarityScore float64 `json:"similarityScore"`
}

// Label returns the display label for a section code, e.g. "Comisión 7024".
func Label(code string) string {
	return labelPrefix + code
}

// IsPresent reports whether v carries information: non-empty and not the
// NotAvailable placeholder.
func IsPresent(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != NotAvailable
}

// OrNA returns v, or NotAvailable when v is empty.
func OrNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotAvailable
	}
	return v
}

// Field returns the value stored for a semantic category.
// Unclassified yields the empty string.
func (r Record) Field(c Category) string {
	switch c {
	case Period:
		return r.Period
	case SectionCode:
		return r.SectionCode
	case Room:
		return r.Room
	case Modality:
		return r.Modality
	case Schedule:
		return r.Schedule
	case Activity:
		return r.Activity
	case Instructor:
		return r.Instructor
	default:
		return ""
	}
}

// MissingFields lists the semantic categories still set to NotAvailable.
func (r Record) MissingFields() []Category {
	var missing []Category
	for _, c := range SemanticCategories {
		if !IsPresent(r.Field(c)) {
			missing = append(missing, c)
		}
	}
	return missing
}

// NoMatchPlaceholder builds the record paired with a source-A record that has
// no counterpart in source B. The section code and room of the source record
// are carried over so the entry stays useful on its own.
func NoMatchPlaceholder(from Record) Record {
	return Record{
		Name:        NoMatchName,
		SourceFile:  NotAvailable,
		Page:        0,
		RawText:     NoMatchText,
		Period:      NotAvailable,
		Activity:    NotAvailable,
		SectionCode: OrNA(from.SectionCode),
		Modality:    NotAvailable,
		Instructor:  NotAvailable,
		Schedule:    NotAvailable,
		Room:        OrNA(from.Room),
	}
}
