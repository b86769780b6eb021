package matcher

import (
	"strings"

	"github.com/spigell/lente/internal/lexicon"
)

// LocationMatch is the outcome of comparing a query with a candidate location.
// Reason is set only when Matched is true.
type LocationMatch struct {
	Matched bool
	Reason  *Reason
}

// Explanation returns the human readable reason, or an empty string when nothing matched.
func (m LocationMatch) Explanation() string {
	if m.Reason == nil {
		return ""
	}
	return m.Reason.String()
}

// MatchLocation reports whether query and candidateLocation refer to the same place,
// using the built-in geographic lexicon.
func MatchLocation(query, candidateLocation string) LocationMatch {
	return matchLocation(lexicon.Places, query, candidateLocation)
}

func matchLocation(places *lexicon.Lexicon, query, candidateLocation string) LocationMatch {
	normalizedQuery := lexicon.Normalize(query)
	normalizedLocation := lexicon.Normalize(candidateLocation)

	// An empty side would be a substring of everything.
	if normalizedQuery == "" || normalizedLocation == "" {
		return LocationMatch{}
	}

	if strings.Contains(normalizedLocation, normalizedQuery) || strings.Contains(normalizedQuery, normalizedLocation) {
		return LocationMatch{
			Matched: true,
			Reason:  &Reason{Kind: ReasonLocation, Location: candidateLocation},
		}
	}

	for _, area := range places.Entries() {
		if area.MentionedIn(normalizedQuery) && area.MentionedIn(normalizedLocation) {
			return LocationMatch{
				Matched: true,
				Reason:  &Reason{Kind: ReasonLocationArea, Location: candidateLocation, Area: area.Key},
			}
		}
	}

	return LocationMatch{}
}
