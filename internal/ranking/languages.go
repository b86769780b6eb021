package ranking

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type languagesFilter struct {
	languages []string
}

// NewLanguages creates a filter that keeps only candidates speaking one of the configured languages.
func NewLanguages() Filter {
	return &languagesFilter{}
}

func (f *languagesFilter) Name() string { return "languages" }

func (f *languagesFilter) Disable(string) {}

func (f *languagesFilter) IsEnabled() bool { return true }

func (f *languagesFilter) Validate(cfg *Config) error {
	f.languages = nil
	if cfg == nil {
		return nil
	}
	for _, lang := range cfg.Languages {
		if lang = strings.TrimSpace(lang); lang != "" {
			f.languages = append(f.languages, lang)
		}
	}
	return nil
}

func (f *languagesFilter) Apply(_ context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()
	if len(f.languages) == 0 {
		return s, Step{Initial: initial, Dropped: 0, Left: s.Len()}, nil
	}

	removed := s.Drop(func(e *Entry) bool {
		return !e.Candidate.Speaks(f.languages)
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates by languages",
			zap.Strings("required_languages", f.languages),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(removed), Left: s.Len()}, nil
}

func (f *languagesFilter) Status() Status {
	details := map[string]string{}
	if len(f.languages) > 0 {
		details["languages"] = strings.Join(f.languages, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
