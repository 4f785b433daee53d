package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// matchOptions returns the indexes of options whose labels match query,
// best match first. An empty query matches everything in store order.
func matchOptions(options []Option, query string) []int {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		all := make([]int, len(options))
		for i := range options {
			all[i] = i
		}
		return all
	}
	if len(options) == 0 {
		return nil
	}
	targets := make([]string, len(options))
	for i, opt := range options {
		targets[i] = strings.ToLower(opt.Label)
	}
	matches := fuzzy.Find(query, targets)
	out := make([]int, 0, len(matches))
	for _, match := range matches {
		if match.Index >= 0 && match.Index < len(options) {
			out = append(out, match.Index)
		}
	}
	return out
}
