package comision

// Category is the semantic class assigned to a cell or line.
// The declaration order is the classification priority: lower values win.
type Category int

const (
	Period Category = iota
	SectionCode
	Room
	Modality
	Schedule
	Activity
	Instructor
	Unclassified
)

// SemanticCategories lists every classifiable category in priority order.
var SemanticCategories = []Category{Period, SectionCode, Room, Modality, Schedule, Activity, Instructor}

// ContextCategories are the categories that describe a section beyond its code.
var ContextCategories = []Category{Period, Activity, Modality, Instructor, Schedule, Room}

func (c Category) String() string {
	switch c {
	case Period:
		return "period"
	case SectionCode:
		return "sectionCode"
	case Room:
		return "room"
	case Modality:
		return "modality"
	case Schedule:
		return "schedule"
	case Activity:
		return "activity"
	case Instructor:
		return "instructor"
	default:
		return "unclassified"
	}
}
