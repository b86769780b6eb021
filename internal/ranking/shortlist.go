package ranking

import (
	"sort"

	"github.com/spigell/lente/internal/candidates"
	"github.com/spigell/lente/internal/matcher"
)

// Entry pairs a candidate with its match result.
type Entry struct {
	Candidate *candidates.Candidate `json:"candidate"`
	Result    matcher.Result        `json:"result"`
}

// Shortlist is the ordered working set of a search.
type Shortlist struct {
	Items []*Entry
}

func NewShortlist(list *candidates.Candidates) *Shortlist {
	s := &Shortlist{}
	if list == nil {
		return s
	}
	s.Items = make([]*Entry, 0, list.Len())
	for _, c := range list.Items {
		if c == nil {
			continue
		}
		s.Items = append(s.Items, &Entry{Candidate: c})
	}
	return s
}

func (s *Shortlist) Len() int {
	return len(s.Items)
}

// Drop removes the entries for which drop returns true, preserving the order of the
// rest. It returns the IDs of the removed candidates.
func (s *Shortlist) Drop(drop func(*Entry) bool) []string {
	var removed []string
	kept := s.Items[:0]
	for _, e := range s.Items {
		if drop(e) {
			removed = append(removed, e.Candidate.ID)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.Items); i++ {
		s.Items[i] = nil
	}
	s.Items = kept
	return removed
}

// SortByScore orders entries by descending score. The sort is stable.
func (s *Shortlist) SortByScore() {
	sort.SliceStable(s.Items, func(i, j int) bool {
		return s.Items[i].Result.Score > s.Items[j].Result.Score
	})
}

// Candidates returns the candidates of the shortlist in its current order.
func (s *Shortlist) Candidates() *candidates.Candidates {
	list := &candidates.Candidates{Items: make([]*candidates.Candidate, 0, len(s.Items))}
	for _, e := range s.Items {
		list.Items = append(list.Items, e.Candidate)
	}
	return list
}

func (s *Shortlist) DumpToTmpFile() (string, error) {
	return candidates.DumpJSONToTmpFile("lente_results_*.json", s)
}
