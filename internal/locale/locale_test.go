package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/lente/internal/matcher"
)

var allReasons = []matcher.Reason{
	{Kind: matcher.ReasonConcepts, Concepts: []string{"swift", "swiftui", "engineer"}},
	{Kind: matcher.ReasonMobile},
	{Kind: matcher.ReasonTeamwork},
	{Kind: matcher.ReasonLocation, Location: "Milan"},
	{Kind: matcher.ReasonLocationArea, Location: "Monza", Area: "milan"},
	{Kind: matcher.ReasonPartial},
}

func TestEnglishMatchesMatcherOutput(t *testing.T) {
	t.Parallel()

	tr, err := New("en")
	require.NoError(t, err)

	want := make([]string, 0, len(allReasons))
	for _, r := range allReasons {
		want = append(want, r.String())
	}
	assert.Equal(t, want, tr.Explain(allReasons))
}

func TestItalianRendersEveryKind(t *testing.T) {
	t.Parallel()

	tr, err := New("it-IT")
	require.NoError(t, err)
	assert.Equal(t, "it", tr.Language())
	assert.False(t, tr.Fallback())

	got := tr.Explain(allReasons)
	require.Len(t, got, len(allReasons))
	for i, r := range allReasons {
		assert.NotEqual(t, r.String(), got[i], "kind %s", r.Kind)
		assert.NotEmpty(t, got[i])
	}
	assert.Equal(t, "Competenze chiave rilevate: swift, swiftui, engineer", got[0])
	assert.Equal(t, `Corrispondenza località: Monza (nell'area di "milan")`, got[4])
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	for _, lang := range []string{"", "de", "not a tag"} {
		tr, err := New(lang)
		require.NoError(t, err)
		assert.Equal(t, "en", tr.Language(), "lang %q", lang)
		assert.Equal(t, lang != "", tr.Fallback(), "lang %q", lang)
		assert.Equal(t, []string{matcher.PartialMatchExplanation}, tr.Explain([]matcher.Reason{{Kind: matcher.ReasonPartial}}))
	}
}

func TestUnknownKindFallsBackToReasonString(t *testing.T) {
	t.Parallel()

	tr, err := New("it")
	require.NoError(t, err)
	assert.Equal(t, []string{matcher.PartialMatchExplanation}, tr.Explain([]matcher.Reason{{Kind: "salary"}}))
}

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, []string{"en", "it"}, Supported())
}
