package matcher

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize lowercases, folds full-width characters to their half-width
// forms (full-width digits and latin are common in directory data) and
// collapses runs of whitespace to single spaces.
func Normalize(s string) string {
	folded := width.Fold.String(s)
	lowered := strings.ToLower(folded)
	return strings.Join(strings.Fields(lowered), " ")
}

// normalizeCompact additionally strips all whitespace, for containment
// checks that should not care about spacing differences between sources.
func normalizeCompact(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "")
}
