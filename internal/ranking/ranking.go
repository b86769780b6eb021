package ranking

import (
	"context"
	"fmt"

	"github.com/spigell/lente/internal/candidates"
	"github.com/spigell/lente/internal/matcher"
	"go.uber.org/zap"
)

// DefaultMinScore is the threshold a candidate must exceed to be listed.
const DefaultMinScore = 30

// Filter represents a single step applied to the shortlist.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error)
}

// Scorer scores one candidate against a query.
type Scorer interface {
	Match(query string, c *candidates.Candidate) matcher.Result
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger *zap.Logger
	Scorer Scorer
}

// Step describes the result of executing a step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the search settings consumed by the steps.
type Config struct {
	Query string
	// MinScore overrides DefaultMinScore when set. Zero is a valid threshold.
	MinScore    *int
	Languages   []string
	Workers     int
	ExcludeFile string
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by steps that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DefaultSteps returns the standard pipeline: exclusions first, then scoring, then the threshold.
func DefaultSteps() []Filter {
	return []Filter{
		NewExcludeFile(),
		NewLanguages(),
		NewScore(),
		NewThreshold(),
	}
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates the enabled steps and then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, s *Shortlist) (*Shortlist, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("step disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("ranking step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		s = next
	}

	return s, nil
}

// Rank runs the steps over the candidates and orders the survivors by descending
// score. Candidates with equal scores keep their source order.
func Rank(ctx context.Context, cfg *Config, deps Deps, steps []Filter, list *candidates.Candidates) (*Shortlist, error) {
	shortlist, err := Run(ctx, cfg, deps, steps, NewShortlist(list))
	if err != nil {
		return nil, err
	}

	shortlist.SortByScore()
	return shortlist, nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
