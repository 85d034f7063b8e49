// Package utils holds small helpers shared across views.
package utils

import "strings"

// EstimateTokens gives a rough token count for a prompt string. It
// averages a character-based estimate (about 4 characters per token)
// with a word-based one, which tracks real tokenizers closely enough
// for a length indicator.
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	charEstimate := len(text) / 4
	wordEstimate := int(float64(len(strings.Fields(text))) * 1.3)

	estimate := (charEstimate + wordEstimate) / 2
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}
