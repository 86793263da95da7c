package classify

import (
	"github.com/AdrianCGon/centeno-api/internal/comision"
)

// Free-text lines are longer and noisier than spreadsheet cells, so the line
// predicates below are stricter about activities (no free-text length rule)
// and treat bare code tokens as anchors rather than rooms.

// ContextLine classifies a line for the running scan context. Only the five
// context categories (period, modality, schedule, activity, instructor) are
// returned; anything else is Unclassified.
func ContextLine(line string) comision.Category {
	switch {
	case IsPeriod(line):
		return comision.Period
	case IsModality(line):
		return comision.Modality
	case IsSchedule(line):
		return comision.Schedule
	case IsActivityLine(line):
		return comision.Activity
	case IsInstructor(line):
		return comision.Instructor
	default:
		return comision.Unclassified
	}
}

// WindowLine returns every category a line near a section-code anchor can
// fill, in priority order. A combined line such as "PRESENCIAL Lun 14:00"
// is both a modality and a schedule. code is the anchor's code; a bare room
// numeral equal to it is not a room. Bare code tokens other than room
// numerals are left for their own anchor and yield nothing.
func WindowLine(line, code string) []comision.Category {
	if lineRoomNumeral.MatchString(line) {
		if line == code {
			return nil
		}
		return []comision.Category{comision.Room}
	}
	if lineCodeToken.MatchString(line) {
		return nil
	}

	period := IsPeriod(line)
	modality := IsModality(line)
	activity := IsActivityLine(line)

	var cats []comision.Category
	if period {
		cats = append(cats, comision.Period)
	}
	if IsRoom(line) {
		cats = append(cats, comision.Room)
	}
	if modality {
		cats = append(cats, comision.Modality)
	}
	if IsSchedule(line) {
		cats = append(cats, comision.Schedule)
	}
	if activity {
		cats = append(cats, comision.Activity)
	}
	// Names are the loosest shape; term, modality, subject and room lines
	// often read as two capitalized words.
	if IsInstructor(line) && !period && !modality && !activity && !IsRoomHeading(line) {
		cats = append(cats, comision.Instructor)
	}
	return cats
}

// IsActivityLine reports a subject line: "131 - TEORÍA ..." or any line
// carrying a subject keyword.
func IsActivityLine(line string) bool {
	return lineActivityPattern.MatchString(line) || hasActivityKeyword(line)
}

// IsRoomHeading reports keyword-led room lines ("Aula 12", "Lab-2", "A-201").
// They never open a record.
func IsRoomHeading(line string) bool {
	return roomKeywordLine.MatchString(line)
}

// StartsWithFourDigits reports lines led by a four-digit number, which belong
// to the next record rather than the current window.
func StartsWithFourDigits(line string) bool {
	return leadingFourDigit.MatchString(line)
}

// LineSectionCode finds a section-code candidate in a free-text line. The
// digit-letter form ("66U") wins over bare numerals ("0508"), which win over
// the letter-digit form ("B15").
func LineSectionCode(line string) (string, bool) {
	for _, p := range lineCodePatterns {
		if code := p.FindString(line); code != "" {
			return code, true
		}
	}
	return "", false
}
