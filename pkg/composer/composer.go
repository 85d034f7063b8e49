// Package composer deterministically assembles the output prompt from the
// selected head tags, the translated body, and the selected tail tags.
// Reconciliation is pure: running it twice over unchanged inputs yields
// byte-identical output.
package composer

import "strings"

// Separator joins every element of the rendered output.
const Separator = ", "

// Compose concatenates head tags, the translated body, and tail tags in
// that fixed order, separated by ", ". Empty elements are skipped.
func Compose(head []string, body string, tail []string) string {
	parts := make([]string, 0, len(head)+len(tail)+1)
	for _, h := range head {
		if h != "" {
			parts = append(parts, h)
		}
	}
	if body != "" {
		parts = append(parts, body)
	}
	for _, t := range tail {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, Separator)
}
