package utils

import "testing"

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  int
		max  int
	}{
		{name: "empty", text: "", min: 0, max: 0},
		{name: "whitespace only", text: "   \n ", min: 0, max: 0},
		{name: "single word", text: "cat", min: 1, max: 2},
		{name: "short prompt", text: "a cat sitting on a wall at sunset", min: 5, max: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTokens(tt.text)
			if got < tt.min || got > tt.max {
				t.Errorf("EstimateTokens(%q) = %d, want %d..%d", tt.text, got, tt.min, tt.max)
			}
		})
	}
}
