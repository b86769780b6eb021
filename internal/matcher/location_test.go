package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       string
		location    string
		matched     bool
		explanation string
	}{
		{
			name:        "satellite town resolves to metro area",
			query:       "iOS developer near Milan",
			location:    "Monza",
			matched:     true,
			explanation: `Location match: Monza (matches "milan" area)`,
		},
		{
			name:        "query inside location",
			query:       "milan",
			location:    "Greater Milan Area",
			matched:     true,
			explanation: "Location match: Greater Milan Area",
		},
		{
			name:        "location inside query",
			query:       "engineer based in turin",
			location:    " Turin ",
			matched:     true,
			explanation: "Location match:  Turin ",
		},
		{
			name:        "local name of the city",
			query:       "Roma",
			location:    "Rome, Italy",
			matched:     true,
			explanation: `Location match: Rome, Italy (matches "rome" area)`,
		},
		{
			name:        "shared synonym resolves through the location area",
			query:       "northern italy",
			location:    "Verona, Veneto",
			matched:     true,
			explanation: `Location match: Verona, Veneto (matches "verona" area)`,
		},
		{
			name:     "different places",
			query:    "Berlin",
			location: "Milan",
		},
		{
			name:     "empty location",
			query:    "developer",
			location: "",
		},
		{
			name:     "empty query",
			query:    "  ",
			location: "Milan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MatchLocation(tt.query, tt.location)
			assert.Equal(t, tt.matched, got.Matched)
			assert.Equal(t, tt.explanation, got.Explanation())
			if !tt.matched {
				assert.Nil(t, got.Reason)
			}
		})
	}
}
