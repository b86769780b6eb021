package ranking

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/lente/internal/candidates"
	"github.com/spigell/lente/internal/matcher"
)

// fixedScorer returns a preset score per candidate ID.
type fixedScorer map[string]int

func (s fixedScorer) Match(_ string, c *candidates.Candidate) matcher.Result {
	return matcher.Result{Score: s[c.ID]}
}

func list(ids ...string) *candidates.Candidates {
	v := &candidates.Candidates{}
	for _, id := range ids {
		v.Items = append(v.Items, &candidates.Candidate{ID: id, Name: "name-" + id})
	}
	return v
}

func ids(s *Shortlist) []string {
	out := make([]string, 0, s.Len())
	for _, e := range s.Items {
		out = append(out, e.Candidate.ID)
	}
	return out
}

func TestRankDropsAtThresholdAndKeepsTies(t *testing.T) {
	t.Parallel()

	scorer := fixedScorer{"a": 30, "b": 31, "c": 80, "d": 31, "e": 0, "f": 80}
	cfg := &Config{Query: "ios"}

	got, err := Rank(context.Background(), cfg, Deps{Scorer: scorer}, DefaultSteps(), list("a", "b", "c", "d", "e", "f"))
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "f", "b", "d"}, ids(got))
	for _, e := range got.Items {
		assert.Greater(t, e.Result.Score, DefaultMinScore)
	}
}

func TestRankWithRealMatcher(t *testing.T) {
	t.Parallel()

	source := &candidates.Candidates{Items: []*candidates.Candidate{
		{ID: "1", Name: "Giulia", Description: "Senior engineer, agile, cross-functional", Location: "Milan", Skills: []string{"Swift", "SwiftUI"}},
		{ID: "2", Name: "Marco", Description: "Backend engineer", Location: "Berlin", Skills: []string{"Rust"}},
		{ID: "3", Name: "Sara", Description: "iOS developer", Location: "Monza", Skills: []string{"Swift"}},
	}}

	got, err := Rank(context.Background(), &Config{Query: "iOS developer near Milan with teamwork experience"},
		Deps{Scorer: matcher.New()}, DefaultSteps(), source)
	require.NoError(t, err)

	require.Equal(t, []string{"1", "3"}, ids(got))
	assert.Equal(t, 100, got.Items[0].Result.Score)
	assert.True(t, sort.SliceIsSorted(got.Items, func(i, j int) bool {
		return got.Items[i].Result.Score > got.Items[j].Result.Score
	}))
}

func TestRankThresholdDisabled(t *testing.T) {
	t.Parallel()

	steps := DefaultSteps()
	DisableByName(steps, "threshold", "all requested")

	got, err := Rank(context.Background(), &Config{Query: "ios"}, Deps{Scorer: fixedScorer{"a": 0, "b": 10}}, steps, list("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(got))

	var threshold Status
	for _, st := range Describe(steps) {
		if st.Name == "threshold" {
			threshold = st
		}
	}
	assert.False(t, threshold.Enabled)
	assert.Equal(t, "all requested", threshold.Reason)
}

func TestRankCustomMinScore(t *testing.T) {
	t.Parallel()

	minScore := 50
	got, err := Rank(context.Background(), &Config{Query: "ios", MinScore: &minScore},
		Deps{Scorer: fixedScorer{"a": 50, "b": 51}}, DefaultSteps(), list("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestRankZeroMinScore(t *testing.T) {
	t.Parallel()

	minScore := 0
	steps := DefaultSteps()
	got, err := Rank(context.Background(), &Config{Query: "ios", MinScore: &minScore},
		Deps{Scorer: fixedScorer{"a": 0, "b": 1, "c": 30}}, steps, list("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(got))

	for _, st := range Describe(steps) {
		if st.Name == "threshold" {
			assert.Equal(t, "0", st.Details["min_score"])
		}
	}
}

func TestRankRequiresQuery(t *testing.T) {
	t.Parallel()

	_, err := Rank(context.Background(), &Config{Query: "  "}, Deps{Scorer: fixedScorer{}}, DefaultSteps(), list("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score: query is required")
}

func TestRankRequiresScorer(t *testing.T) {
	t.Parallel()

	_, err := Rank(context.Background(), &Config{Query: "ios"}, Deps{}, DefaultSteps(), list("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scorer is required")
}

func TestRankCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Rank(ctx, &Config{Query: "ios"}, Deps{Scorer: fixedScorer{}}, DefaultSteps(), list("a", "b"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankEmptySource(t *testing.T) {
	t.Parallel()

	got, err := Rank(context.Background(), &Config{Query: "ios"}, Deps{Scorer: fixedScorer{}}, DefaultSteps(), &candidates.Candidates{})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestLanguagesFilter(t *testing.T) {
	t.Parallel()

	source := &candidates.Candidates{Items: []*candidates.Candidate{
		{ID: "a", Languages: []string{"Italian", "English"}},
		{ID: "b", Languages: []string{"German"}},
		{ID: "c"},
	}}

	core, logs := observer.New(zapcore.InfoLevel)
	deps := Deps{Logger: zap.New(core), Scorer: fixedScorer{"a": 90, "b": 90, "c": 90}}

	got, err := Rank(context.Background(), &Config{Query: "ios", Languages: []string{" english "}}, deps, DefaultSteps(), source)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(got))

	entries := logs.FilterMessage("excluding candidates by languages").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["candidates_left"])
}

func TestExcludeFileFilter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excluded.json")
	excluded := &candidates.ExcludedCandidates{Items: []*candidates.ExcludedCandidate{
		{ID: "b", Name: "name-b", ExcludedAt: time.Now().UTC()},
	}}
	require.NoError(t, excluded.ToFile(path))

	got, err := Rank(context.Background(), &Config{Query: "ios", ExcludeFile: path},
		Deps{Scorer: fixedScorer{"a": 40, "b": 90, "c": 50}}, DefaultSteps(), list("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(got))
}

func TestExcludeFileFilterMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.json")
	got, err := Rank(context.Background(), &Config{Query: "ios", ExcludeFile: path},
		Deps{Scorer: fixedScorer{"a": 40}}, DefaultSteps(), list("a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestExcludeFileFilterBrokenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Rank(context.Background(), &Config{Query: "ios", ExcludeFile: path},
		Deps{Scorer: fixedScorer{}}, DefaultSteps(), list("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude_file: getting excluded candidates from file")
}

func TestRunLogsSteps(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	steps := DefaultSteps()
	DisableByName(steps, "threshold", "test")

	_, err := Run(context.Background(), &Config{Query: "ios"}, Deps{Logger: zap.New(core), Scorer: fixedScorer{}}, steps, NewShortlist(list("a")))
	require.NoError(t, err)

	assert.Equal(t, 3, logs.FilterMessage("ranking step").Len())
	disabled := logs.FilterMessage("step disabled").All()
	require.Len(t, disabled, 1)
	assert.Equal(t, "threshold", disabled[0].ContextMap()["name"])
}

func TestShortlistDumpToTmpFile(t *testing.T) {
	t.Parallel()

	s := NewShortlist(list("a"))
	s.Items[0].Result = matcher.Result{Score: 42, Explanations: []string{"x"}}

	path, err := s.DumpToTmpFile()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Shortlist
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, 42, decoded.Items[0].Result.Score)
	assert.Equal(t, "a", decoded.Items[0].Candidate.ID)
}

func TestNewShortlistSkipsNil(t *testing.T) {
	t.Parallel()

	v := list("a")
	v.Items = append(v.Items, nil)
	assert.Equal(t, 1, NewShortlist(v).Len())
	assert.Equal(t, 0, NewShortlist(nil).Len())
}
