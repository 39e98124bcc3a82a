// Package matcher implements fuzzy equality for restaurant names and
// administrative addresses across heterogeneous data sources. Matching is
// substring containment over normalized text plus region alias expansion;
// deliberately no edit-distance fuzziness, so two genuinely different
// restaurants never collapse into one.
package matcher

import "strings"

// MatchAddress reports whether a candidate address falls inside the user's
// region. The region is expanded through its alias group (and completed
// with common administrative suffixes when it carries none) and matches if
// any expansion is contained in the address. Empty inputs never match.
func MatchAddress(candidateAddress, userRegion string) bool {
	if strings.TrimSpace(candidateAddress) == "" || strings.TrimSpace(userRegion) == "" {
		return false
	}

	address := normalizeCompact(candidateAddress)
	for _, region := range expandRegion(userRegion) {
		if strings.Contains(address, strings.ReplaceAll(region, " ", "")) {
			return true
		}
	}
	return false
}

// MatchName reports whether two restaurant names refer to the same place:
// bidirectional substring containment over normalized, space-stripped text.
// Empty inputs never match.
func MatchName(candidateName, searchName string) bool {
	a := normalizeCompact(candidateName)
	b := normalizeCompact(searchName)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
