// Package similarity scores how alike two strings, or two records, are.
//
// Lengths are counted in runes, so accented text ("TEORÍA") measures the same
// whether or not it arrived precomposed.
package similarity

import (
	"strings"

	"github.com/AdrianCGon/centeno-api/internal/comision"
)

// Distance returns the Levenshtein edit distance between a and b, with unit
// cost for insertion, deletion and substitution.
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ar {
		curr[0] = i + 1
		for j, cb := range br {
			sub := prev[j]
			if ca != cb {
				sub++
			}
			curr[j+1] = min(curr[j]+1, prev[j+1]+1, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

// Ratio returns the normalized similarity of a and b in [0, 1]:
// (maxLen - Distance) / maxLen. Two empty strings are identical.
func Ratio(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-Distance(a, b)) / float64(maxLen)
}

// Field points awarded per compared field.
const (
	ExactPoints  = 100
	StrongPoints = 80
	WeakPoints   = 60

	strongRatio = 0.7
	weakRatio   = 0.5
)

// scoredFields are the record fields that take part in RecordScore.
var scoredFields = []comision.Category{
	comision.Activity,
	comision.Modality,
	comision.Instructor,
	comision.Schedule,
}

// FieldScore grades one pair of values: ExactPoints for a case-insensitive
// match, StrongPoints when Ratio exceeds 0.7, WeakPoints when it exceeds 0.5,
// zero otherwise.
func FieldScore(a, b string) float64 {
	if strings.EqualFold(a, b) {
		return ExactPoints
	}
	switch r := Ratio(a, b); {
	case r > strongRatio:
		return StrongPoints
	case r > weakRatio:
		return WeakPoints
	default:
		return 0
	}
}

// RecordScore averages FieldScore over the activity, modality, instructor and
// schedule fields present on both records. It returns a value in [0, 100],
// and 0 when no field is comparable.
func RecordScore(a, b comision.Record) float64 {
	var total float64
	compared := 0
	for _, c := range scoredFields {
		va, vb := a.Field(c), b.Field(c)
		if !comision.IsPresent(va) || !comision.IsPresent(vb) {
			continue
		}
		compared++
		total += FieldScore(va, vb)
	}
	if compared == 0 {
		return 0
	}
	return total / float64(compared)
}
