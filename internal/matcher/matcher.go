package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/lente/internal/candidates"
	"github.com/spigell/lente/internal/lexicon"
)

const (
	maxScore = 100

	conceptPoints   = 8
	conceptCap      = 50
	skillPoints     = 5
	skillCap        = 20
	mobileBonus     = 20
	teamworkBonus   = 15
	locationBonus   = 15
	maxConceptNames = 3

	// Query tokens of this many runes or fewer are ignored.
	shortTokenRunes = 2
)

var (
	mobileTerms   = []string{"ios", "swift", "apple", "swiftui", "iphone", "ipad"}
	teamworkTerms = []string{"team", "collaboration", "cross-functional", "agile", "leadership", "mentoring"}
)

// Result is the score of one candidate against one query.
type Result struct {
	Score        int      `json:"score"`
	Explanations []string `json:"explanations"`
	Reasons      []Reason `json:"reasons"`
}

// Matcher scores candidates against free-text queries. It holds no mutable state
// and is safe for concurrent use.
type Matcher struct {
	skills *lexicon.Lexicon
	places *lexicon.Lexicon
}

// New returns a matcher backed by the built-in lexicons.
func New() *Matcher {
	return NewWithLexicons(lexicon.Skills, lexicon.Places)
}

// NewWithLexicons returns a matcher backed by the given lexicons.
func NewWithLexicons(skills, places *lexicon.Lexicon) *Matcher {
	return &Matcher{skills: skills, places: places}
}

// Match scores the candidate against query. A nil candidate scores as an empty profile.
func (m *Matcher) Match(query string, c *candidates.Candidate) Result {
	if c == nil {
		c = &candidates.Candidate{}
	}

	normalizedQuery := lexicon.Normalize(query)
	normalizedDescription := lexicon.Normalize(c.Description)
	normalizedSkills := make([]string, 0, len(c.Skills))
	for _, skill := range c.Skills {
		// An empty skill would be contained in every term.
		if s := lexicon.Normalize(skill); s != "" {
			normalizedSkills = append(normalizedSkills, s)
		}
	}

	expanded := m.expandQuery(normalizedQuery)

	var (
		score        int
		skillMatches int
		reasons      []Reason
		concepts     = newConceptSet()
	)

	for _, term := range expanded {
		if matchesAnySkill(term, normalizedSkills) {
			skillMatches++
			concepts.add(term)
		}
		if strings.Contains(normalizedDescription, term) {
			concepts.add(term)
		}
	}

	if concepts.size() > 0 {
		score += min(conceptCap, concepts.size()*conceptPoints)
		reasons = append(reasons, Reason{Kind: ReasonConcepts, Concepts: concepts.first(maxConceptNames)})
	}

	if skillMatches > 0 {
		score += min(skillCap, skillMatches*skillPoints)
	}

	if containsAny(normalizedQuery, mobileTerms) && mobileInCandidate(normalizedDescription, normalizedSkills) {
		score += mobileBonus
		reasons = append(reasons, Reason{Kind: ReasonMobile})
	}

	if containsAny(normalizedQuery, teamworkTerms) && containsAny(normalizedDescription, teamworkTerms) {
		score += teamworkBonus
		reasons = append(reasons, Reason{Kind: ReasonTeamwork})
	}

	if location := matchLocation(m.places, normalizedQuery, c.Location); location.Matched {
		score += locationBonus
		reasons = append(reasons, *location.Reason)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, Reason{Kind: ReasonPartial})
	}

	return Result{
		Score:        clamp(score),
		Explanations: explain(reasons),
		Reasons:      reasons,
	}
}

// Tokens returns the significant query tokens: whitespace separated words longer
// than two runes.
func Tokens(query string) []string {
	var tokens []string
	for _, word := range strings.Fields(lexicon.Normalize(query)) {
		if utf8.RuneCountInString(word) > shortTokenRunes {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// ExpandQuery returns the expanded query terms for query using the built-in lexicon.
func ExpandQuery(query string) []string {
	return New().expandQuery(query)
}

// expandQuery concatenates the expansion of every token. Each expansion is distinct,
// but a term reached from several tokens appears once per token and counts toward
// the skill bonus each time.
func (m *Matcher) expandQuery(query string) []string {
	var expanded []string
	for _, token := range Tokens(query) {
		expanded = append(expanded, m.skills.Expand(token)...)
	}
	return expanded
}

func matchesAnySkill(term string, skills []string) bool {
	for _, skill := range skills {
		if strings.Contains(skill, term) || strings.Contains(term, skill) {
			return true
		}
	}
	return false
}

func mobileInCandidate(description string, skills []string) bool {
	if containsAny(description, mobileTerms) {
		return true
	}
	for _, skill := range skills {
		if containsAny(skill, mobileTerms) {
			return true
		}
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	return max(0, min(maxScore, score))
}

func explain(reasons []Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, r.String())
	}
	return out
}

// conceptSet keeps distinct terms in insertion order.
type conceptSet struct {
	seen  map[string]struct{}
	items []string
}

func newConceptSet() *conceptSet {
	return &conceptSet{seen: make(map[string]struct{})}
}

func (s *conceptSet) add(term string) {
	if _, ok := s.seen[term]; ok {
		return
	}
	s.seen[term] = struct{}{}
	s.items = append(s.items, term)
}

func (s *conceptSet) size() int {
	return len(s.items)
}

func (s *conceptSet) first(n int) []string {
	if len(s.items) < n {
		n = len(s.items)
	}
	return append([]string(nil), s.items[:n]...)
}
