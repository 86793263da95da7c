package classify

import (
	"github.com/AdrianCGon/centeno-api/internal/comision"
	"github.com/AdrianCGon/centeno-api/internal/stringutil"
)

// Decision is one classified cell, reported to a Tracer.
type Decision struct {
	Position   int
	Value      string
	Categories []comision.Category
}

// Tracer observes classification. Implementations must be safe for
// concurrent use when shared between extractors.
type Tracer interface {
	// TraceDecision is called once per non-blank cell, in row order.
	TraceDecision(d Decision)
	// TraceMissing is called after a record is built with the fields that
	// stayed unresolved.
	TraceMissing(code string, missing []comision.Category)
}

// Fields maps each resolved category to its winning value.
type Fields map[comision.Category]string

// Get returns the value for c, or comision.NotAvailable.
func (f Fields) Get(c comision.Category) string {
	if v, ok := f[c]; ok && v != "" {
		return v
	}
	return comision.NotAvailable
}

type classified struct {
	position int
	value    string
	category comision.Category
}

// Contextualizer resolves the fields of a full row.
// The zero value is ready to use and traces nothing.
type Contextualizer struct {
	tracer Tracer
}

// NewContextualizer returns a Contextualizer reporting to tracer, which may be nil.
func NewContextualizer(tracer Tracer) *Contextualizer {
	return &Contextualizer{tracer: tracer}
}

// Row classifies every non-blank cell and keeps the first value seen per
// category. anchor is the index of the section-code cell, or -1 when unknown;
// a known anchor always supplies the section code. Section codes are stored
// as extracted codes ("131"), other fields as the normalized cell text.
//
// When no section code is found but an activity is, the code is re-extracted
// from the activity text ("131 - TEORÍA ..." yields "131").
func (c *Contextualizer) Row(cells []string, anchor int) Fields {
	pairs := make([]classified, 0, len(cells)+1)

	if anchor >= 0 && anchor < len(cells) {
		if v := stringutil.Normalize(cells[anchor]); !isBlank(v) {
			pairs = append(pairs, classified{position: anchor, value: v, category: comision.SectionCode})
		}
	}

	for i, cell := range cells {
		v := stringutil.Normalize(cell)
		if isBlank(v) {
			continue
		}
		cats := Classify(v)
		c.traceDecision(Decision{Position: i, Value: v, Categories: cats})
		for _, cat := range cats {
			if cat == comision.Unclassified {
				continue
			}
			pairs = append(pairs, classified{position: i, value: v, category: cat})
		}
	}

	fields := make(Fields, len(comision.SemanticCategories))
	for _, p := range pairs {
		if _, seen := fields[p.category]; seen {
			continue
		}
		v := p.value
		if p.category == comision.SectionCode {
			if code, ok := ExtractSectionCode(v); ok {
				v = code
			}
		}
		fields[p.category] = v
	}

	if _, ok := fields[comision.SectionCode]; !ok {
		if activity, ok := fields[comision.Activity]; ok {
			if code, ok := ExtractSectionCode(activity); ok {
				fields[comision.SectionCode] = code
			}
		}
	}
	return fields
}

// AuditMissing reports the unresolved fields of r to the tracer, if any.
func (c *Contextualizer) AuditMissing(r comision.Record) {
	if c == nil || c.tracer == nil {
		return
	}
	missing := r.MissingFields()
	if len(missing) == 0 {
		return
	}
	c.tracer.TraceMissing(r.SectionCode, missing)
}

func (c *Contextualizer) traceDecision(d Decision) {
	if c == nil || c.tracer == nil {
		return
	}
	c.tracer.TraceDecision(d)
}
