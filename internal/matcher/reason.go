package matcher

import (
	"fmt"
	"strings"
)

// ReasonKind identifies the signal that produced an explanation.
type ReasonKind string

const (
	ReasonConcepts     ReasonKind = "concepts"
	ReasonMobile       ReasonKind = "mobile"
	ReasonTeamwork     ReasonKind = "teamwork"
	ReasonLocation     ReasonKind = "location"
	ReasonLocationArea ReasonKind = "location_area"
	ReasonPartial      ReasonKind = "partial"
)

// Reason is the structured form of an explanation. Presenters can localize it
// from Kind and the parameters instead of parsing the English text.
type Reason struct {
	Kind     ReasonKind `json:"kind"`
	Concepts []string   `json:"concepts,omitempty"`
	Location string     `json:"location,omitempty"`
	Area     string     `json:"area,omitempty"`
}

// String renders the reason in English.
func (r Reason) String() string {
	switch r.Kind {
	case ReasonConcepts:
		return "Key skills detected: " + strings.Join(r.Concepts, ", ")
	case ReasonMobile:
		return "iOS match: detected from Apple frameworks/Swift experience"
	case ReasonTeamwork:
		return "Teamwork match: strong collaboration and cross-functional experience"
	case ReasonLocation:
		return "Location match: " + r.Location
	case ReasonLocationArea:
		return fmt.Sprintf("Location match: %s (matches %q area)", r.Location, r.Area)
	default:
		return PartialMatchExplanation
	}
}

// PartialMatchExplanation is emitted when no signal fired.
const PartialMatchExplanation = "Partial match based on profile keywords"
