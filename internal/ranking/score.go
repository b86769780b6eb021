package ranking

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

type scoreFilter struct {
	query   string
	workers int
}

// NewScore creates the step that scores every candidate against the query.
// It never drops candidates.
func NewScore() Filter {
	return &scoreFilter{}
}

func (f *scoreFilter) Name() string { return "score" }

func (f *scoreFilter) Disable(string) {}

func (f *scoreFilter) IsEnabled() bool { return true }

func (f *scoreFilter) Validate(cfg *Config) error {
	if cfg == nil || strings.TrimSpace(cfg.Query) == "" {
		return fmt.Errorf("query is required")
	}
	f.query = cfg.Query
	f.workers = cfg.Workers
	if f.workers <= 0 {
		f.workers = runtime.NumCPU()
	}
	return nil
}

func (f *scoreFilter) Apply(ctx context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()
	if deps.Scorer == nil {
		return s, Step{}, fmt.Errorf("scorer is required")
	}
	if initial == 0 {
		return s, Step{}, nil
	}

	pool, err := ants.NewPool(min(f.workers, initial))
	if err != nil {
		return s, Step{}, fmt.Errorf("create scoring pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, e := range s.Items {
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			e.Result = deps.Scorer.Match(f.query, e.Candidate)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return s, Step{}, fmt.Errorf("submit scoring task: %w", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return s, Step{}, fmt.Errorf("scoring interrupted: %w", err)
	}

	if deps.Logger != nil {
		deps.Logger.Debug("candidates scored",
			zap.Int("candidates", initial),
			zap.Int("workers", pool.Cap()),
		)
	}

	return s, Step{Initial: initial, Dropped: 0, Left: s.Len()}, nil
}

func (f *scoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"workers": strconv.Itoa(f.workers)},
	}
}
