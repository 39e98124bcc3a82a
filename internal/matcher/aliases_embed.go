package matcher

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/region_aliases.yaml
var regionAliasYAML []byte

// regionRules is the parsed alias configuration.
type regionRules struct {
	AliasGroups    [][]string `yaml:"alias_groups"`
	CommonSuffixes []string   `yaml:"common_suffixes"`
	AdminSuffixes  []string   `yaml:"admin_suffixes"`
}

var (
	// aliasIndex maps a normalized region spelling to every spelling in
	// its group, itself included.
	aliasIndex     map[string][]string
	commonSuffixes []string
	adminSuffixes  []string
)

func init() {
	var rules regionRules
	if err := yaml.Unmarshal(regionAliasYAML, &rules); err != nil {
		panic("matcher: bad embedded region_aliases.yaml: " + err.Error())
	}

	aliasIndex = make(map[string][]string, len(rules.AliasGroups)*3)
	for _, group := range rules.AliasGroups {
		normalized := make([]string, 0, len(group))
		for _, member := range group {
			normalized = append(normalized, Normalize(member))
		}
		for _, member := range normalized {
			aliasIndex[member] = normalized
		}
	}
	commonSuffixes = rules.CommonSuffixes
	adminSuffixes = rules.AdminSuffixes
}

// hasAdminSuffix reports whether the region already ends in an
// administrative unit suffix.
func hasAdminSuffix(region string) bool {
	for _, suffix := range adminSuffixes {
		if strings.HasSuffix(region, suffix) {
			return true
		}
	}
	return false
}

// expandRegion returns every spelling of the region worth trying as a
// substring of a candidate address: the region itself, its alias group,
// and suffix-completed forms when the region names no administrative unit.
func expandRegion(region string) []string {
	normalized := Normalize(region)
	seen := map[string]bool{normalized: true}
	expanded := []string{normalized}

	for _, alias := range aliasIndex[normalized] {
		if !seen[alias] {
			seen[alias] = true
			expanded = append(expanded, alias)
		}
	}

	if !hasAdminSuffix(normalized) {
		for _, suffix := range commonSuffixes {
			completed := normalized + suffix
			if !seen[completed] {
				seen[completed] = true
				expanded = append(expanded, completed)
			}
		}
	}
	return expanded
}
