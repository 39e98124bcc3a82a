package matcher

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Default blend between Jaro-Winkler and Levenshtein similarity.
const (
	DefaultJWWeight  = 0.6
	DefaultLevWeight = 0.4
)

// Similarity scores how alike two names are in [0,1] using the default
// Jaro-Winkler/Levenshtein blend. Used only to order ambiguous candidate
// lists for the caller; it never decides a match by itself.
func Similarity(a, b string) float64 {
	return SimilarityWeighted(a, b, DefaultJWWeight, DefaultLevWeight)
}

// SimilarityWeighted is Similarity with explicit blend weights.
func SimilarityWeighted(a, b string, jwWeight, levWeight float64) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	jw := smetrics.JaroWinkler(na, nb, 0.7, 4)

	dist := levenshtein.ComputeDistance(na, nb)
	longest := len([]rune(na))
	if l := len([]rune(nb)); l > longest {
		longest = l
	}
	lev := 1 - float64(dist)/float64(longest)
	if lev < 0 {
		lev = 0
	}

	total := jwWeight + levWeight
	if total == 0 {
		return 0
	}
	return (jw*jwWeight + lev*levWeight) / total
}
