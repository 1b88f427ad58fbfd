package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var reSpaces = regexp.MustCompile(`\s+`)

// CollapseSpaces trims s and squeezes every whitespace run to one space.
func CollapseSpaces(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// Key returns a case-folded, whitespace-normalised form of s for
// case-insensitive comparison. The original string is never modified.
func Key(s string) string {
	return cases.Fold().String(CollapseSpaces(s))
}

// CompositeKey joins the keys of several parts, e.g. school+degree.
func CompositeKey(parts ...string) string {
	keys := make([]string, len(parts))
	for i, p := range parts {
		keys[i] = Key(p)
	}
	return strings.Join(keys, "\x1f")
}

// UniqueFold drops blank entries and case-insensitive duplicates, keeping the
// first spelling seen and the original order.
func UniqueFold(items ...[]string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, list := range items {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			k := Key(s)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
