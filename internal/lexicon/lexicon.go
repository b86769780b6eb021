package lexicon

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry maps a canonical term to its synonyms.
type Entry struct {
	Key      string
	Synonyms []string
}

// Lexicon is an ordered, read-only list of entries.
// Iteration follows the definition order so expansion is deterministic.
type Lexicon struct {
	entries []Entry
}

// New builds a lexicon from the given entries. Keys and synonyms are normalized.
func New(entries ...Entry) *Lexicon {
	l := &Lexicon{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		synonyms := make([]string, 0, len(e.Synonyms))
		for _, s := range e.Synonyms {
			synonyms = append(synonyms, Normalize(s))
		}
		l.entries = append(l.entries, Entry{Key: Normalize(e.Key), Synonyms: synonyms})
	}
	return l
}

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	// cases.Caser is stateful, so a new one is created per call.
	return strings.TrimSpace(cases.Lower(language.Und).String(s))
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the lexicon entries in definition order.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, Entry{Key: e.Key, Synonyms: append([]string(nil), e.Synonyms...)})
	}
	return out
}

// Expand returns the normalized term followed by every key and synonym of the entries
// related to it. An entry is related when its key, or one of its synonyms, contains the
// term or is contained in it. The result holds no duplicates.
func (l *Lexicon) Expand(term string) []string {
	normalized := Normalize(term)
	if normalized == "" {
		return nil
	}

	set := newOrderedSet(normalized)
	for _, e := range l.entries {
		if overlaps(normalized, e.Key) {
			set.add(e.Key)
			set.add(e.Synonyms...)
		}
		for _, syn := range e.Synonyms {
			if overlaps(normalized, syn) {
				set.add(e.Key)
				set.add(e.Synonyms...)
				break
			}
		}
	}

	return set.items
}

// Resolve returns the first entry whose key or any synonym appears in text.
// text is expected to be normalized already.
func (l *Lexicon) Resolve(text string) (Entry, bool) {
	for _, e := range l.entries {
		if e.MentionedIn(text) {
			return e, true
		}
	}
	return Entry{}, false
}

// MentionedIn reports whether the key or one of the synonyms is a substring of text.
func (e Entry) MentionedIn(text string) bool {
	if strings.Contains(text, e.Key) {
		return true
	}
	for _, syn := range e.Synonyms {
		if strings.Contains(text, syn) {
			return true
		}
	}
	return false
}

// overlaps is bidirectional substring containment.
func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet(items ...string) *orderedSet {
	s := &orderedSet{seen: make(map[string]struct{})}
	s.add(items...)
	return s
}

func (s *orderedSet) add(items ...string) {
	for _, item := range items {
		if _, ok := s.seen[item]; ok {
			continue
		}
		s.seen[item] = struct{}{}
		s.items = append(s.items, item)
	}
}
