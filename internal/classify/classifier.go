// Package classify decides which semantic field of a class-section record a
// cell or line of text most likely holds.
//
// Every predicate is a pure function of its input. Classify evaluates them in
// a fixed priority order:
//
//	Period > SectionCode > Room > Modality > Schedule > Activity > Instructor
//
// A value may satisfy both SectionCode and Activity ("131 - TEORÍA GENERAL DEL
// DERECHO"); it is then reported under both categories.
package classify

import (
	"strings"

	"github.com/AdrianCGon/centeno-api/internal/comision"
	"github.com/AdrianCGon/centeno-api/internal/stringutil"
)

// Classify returns the categories v belongs to, in priority order.
// The result has one element, except for the section-code-and-activity case
// which yields two. Unrecognized values yield Unclassified.
func Classify(v string) []comision.Category {
	switch {
	case IsPeriod(v):
		return []comision.Category{comision.Period}
	case IsSectionCode(v):
		if IsActivity(v) {
			return []comision.Category{comision.SectionCode, comision.Activity}
		}
		return []comision.Category{comision.SectionCode}
	case IsRoom(v):
		return []comision.Category{comision.Room}
	case IsModality(v):
		return []comision.Category{comision.Modality}
	case IsSchedule(v):
		return []comision.Category{comision.Schedule}
	case IsActivity(v):
		return []comision.Category{comision.Activity}
	case IsInstructor(v):
		return []comision.Category{comision.Instructor}
	default:
		return []comision.Category{comision.Unclassified}
	}
}

// IsPeriod reports whether v names an academic term ("PRIMER CUATRIMESTRE",
// "ABOGACÍA 2025").
func IsPeriod(v string) bool {
	lower := strings.ToLower(v)
	for _, kw := range periodKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsSectionCode reports whether v is a bare section code or starts with one
// followed by a dash.
func IsSectionCode(v string) bool {
	v = strings.TrimSpace(v)
	return matchesAny(sectionCodePatterns, v) || leadingCodePattern.MatchString(v)
}

// ExtractSectionCode pulls the section code out of v. A code leading a dash
// ("131 - ...") wins over the first code-shaped substring anywhere in v.
func ExtractSectionCode(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if m := leadingCodePattern.FindStringSubmatch(v); m != nil {
		return m[1], true
	}
	if code := genericCodePattern.FindString(v); code != "" {
		return code, true
	}
	return "", false
}

// IsRoom reports whether v looks like a classroom or a virtual venue.
// Values that are periods, modalities, instructors, schedules or section codes
// are never rooms; bare three-digit numerals belong to section codes.
func IsRoom(v string) bool {
	v = strings.TrimSpace(v)
	if isBlank(v) {
		return false
	}
	if IsPeriod(v) || IsModality(v) || IsInstructor(v) || IsSchedule(v) || IsSectionCode(v) {
		return false
	}
	if bareNumeral4.MatchString(v) || codeWithLetter.MatchString(v) || bareNumeral3.MatchString(v) {
		return false
	}
	if matchesAny(roomPatterns, v) {
		return true
	}

	// Short leftover tokens. Anything this short cannot pass the free-text
	// activity rule, so only the keyword half of IsActivity applies.
	n := stringutil.RuneLen(v)
	return n >= 2 && n <= 8 &&
		!stringutil.IsUpperWords(v) &&
		!stringutil.IsNumeric(v) &&
		!hasActivityKeyword(v)
}

// IsModality reports whether v states how a class is taught.
func IsModality(v string) bool {
	folded := stringutil.FoldAccents(v)
	for _, kw := range modalityKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// IsSchedule reports whether v carries a weekday or a clock time.
func IsSchedule(v string) bool {
	return matchesAny(schedulePatterns, v)
}

// IsActivity reports whether v names a subject.
func IsActivity(v string) bool {
	v = strings.TrimSpace(v)
	if IsPeriod(v) || IsModality(v) || IsInstructor(v) || IsSchedule(v) {
		return false
	}
	if IsRoom(v) || bareNumeral1to3.MatchString(v) {
		return false
	}
	if hasActivityKeyword(v) {
		return true
	}
	n := stringutil.RuneLen(v)
	return n > 10 && n < 100 && !stringutil.IsNumeric(v) && !stringutil.IsUpperWords(v)
}

// IsInstructor reports whether v has the shape of a person's name.
func IsInstructor(v string) bool {
	n := stringutil.RuneLen(v)
	return n > 3 && n < 50 && matchesAny(instructorPatterns, v)
}

func hasActivityKeyword(v string) bool {
	folded := stringutil.FoldAccents(v)
	for _, kw := range activityKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// isBlank reports empty cells, including spreadsheet exports that render
// missing values as the literals "undefined" or "null", and the N/A sentinel.
func isBlank(v string) bool {
	return v == "" || v == "undefined" || v == "null" || v == comision.NotAvailable
}
