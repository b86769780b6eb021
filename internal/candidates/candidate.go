package candidates

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"
)

type Candidates struct {
	Items []*Candidate
}

type Candidate struct {
	ID          string   `json:"id" yaml:"id" mapstructure:"id"`
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description" yaml:"description" mapstructure:"description"`
	Location    string   `json:"location" yaml:"location" mapstructure:"location"`
	Skills      []string `json:"skills" yaml:"skills" mapstructure:"skills"`
	Languages   []string `json:"languages" yaml:"languages" mapstructure:"languages"`
	CreatedAt   string   `json:"created_at,omitempty" yaml:"created_at,omitempty" mapstructure:"created_at"`
}

type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	ID         string
	Name       string
	ExcludedAt time.Time
}

// Normalize replaces missing lists with empty ones so the matcher never sees nil fields.
func (c *Candidate) Normalize() {
	c.ID = strings.TrimSpace(c.ID)
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Languages == nil {
		c.Languages = []string{}
	}
}

// Speaks reports whether the candidate lists any of the given languages, ignoring case.
func (c *Candidate) Speaks(languages []string) bool {
	for _, want := range languages {
		want = strings.TrimSpace(want)
		for _, have := range c.Languages {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				return true
			}
		}
	}
	return false
}

func (v *Candidates) Len() int {
	return len(v.Items)
}

func (v *Candidates) FindByID(id string) *Candidate {
	for _, c := range v.Items {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (v *Candidates) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, c := range v.Items {
		ids = append(ids, c.ID)
	}
	return ids
}

// SortByName orders candidates by name, keeping the current order for equal names.
func (v *Candidates) SortByName() {
	sort.SliceStable(v.Items, func(i, j int) bool {
		return v.Items[i].Name < v.Items[j].Name
	})
}

func (v *Candidates) normalize() {
	for _, c := range v.Items {
		c.Normalize()
	}
}

// ReportByLocation groups candidate summaries by location.
func (v *Candidates) ReportByLocation() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, c := range v.Items {
		key := strings.TrimSpace(c.Location)
		if key == "" {
			key = "unknown"
		}
		report[key] = append(report[key], map[string]string{
			"id":        c.ID,
			"name":      c.Name,
			"skills":    strings.Join(c.Skills, ", "),
			"languages": strings.Join(c.Languages, ", "),
		})
	}
	return report
}

func (v *Candidates) ToExcluded() *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	for _, c := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			ID:         c.ID,
			Name:       c.Name,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

func GetExcludedCandidatesFromFile(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ExcludedCandidates{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (v *ExcludedCandidates) Append(s *ExcludedCandidates) {
	v.Items = append(v.Items, s.Items...)
}

func (v *ExcludedCandidates) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, c := range v.Items {
		ids = append(ids, c.ID)
	}
	return ids
}

func (v *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DumpJSONToTmpFile writes v as indented JSON into a new temporary file and returns its name.
func DumpJSONToTmpFile(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
