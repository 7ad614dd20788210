// Package strings holds small string helpers shared by stores.
package strings

import (
	"strings"
)

// FoldKey reduces s to its lookup form: lowercase, single-spaced, no
// surrounding space. "  Internal   Medicine " and "internal medicine" fold
// to the same key.
func FoldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// FoldKeys folds every value and drops blanks and repeats, keeping first
// occurrence order.
func FoldKeys(values []string) []string {
	keys := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := FoldKey(v)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
