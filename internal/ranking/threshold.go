package ranking

import (
	"context"
	"strconv"

	"go.uber.org/zap"
)

type thresholdFilter struct {
	disabled bool
	reason   string
	minScore int
}

// NewThreshold creates a filter that drops candidates scoring at or below the minimum score.
func NewThreshold() Filter {
	return &thresholdFilter{minScore: DefaultMinScore}
}

func (f *thresholdFilter) Name() string { return "threshold" }

func (f *thresholdFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *thresholdFilter) IsEnabled() bool { return !f.disabled }

func (f *thresholdFilter) Validate(cfg *Config) error {
	f.minScore = DefaultMinScore
	if cfg != nil && cfg.MinScore != nil {
		f.minScore = *cfg.MinScore
	}
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()

	removed := s.Drop(func(e *Entry) bool {
		return e.Result.Score <= f.minScore
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Debug("dropping candidates below the minimum score",
			zap.Int("min_score", f.minScore),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(removed), Left: s.Len()}, nil
}

func (f *thresholdFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.minScore)},
	}
}
