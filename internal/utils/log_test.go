package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "negative limit drops the value",
			input:  "ios developer",
			limit:  -1,
			expect: "",
		},
		{
			name:   "query within limit is kept",
			input:  "ios developer",
			limit:  13,
			expect: "ios developer",
		},
		{
			name:   "long query is cut",
			input:  "ios developer near milan with teamwork experience",
			limit:  13,
			expect: "ios developer...",
		},
		{
			name:   "cuts on runes, not bytes",
			input:  "città più bella",
			limit:  4,
			expect: "citt...",
		},
		{
			name:   "accented rune at the boundary survives",
			input:  " Forlì-Cesena ",
			limit:  5,
			expect: "Forlì...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
