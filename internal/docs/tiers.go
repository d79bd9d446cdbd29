package docs

import (
	"path"
	"sort"
	"strings"
)

// Tier is the priority class of a documentation file, derived from keyword
// matches in its path. Lower values are fetched first and placed earlier in
// the assembled context.
type Tier int

const (
	// TierCritical covers entry-point documentation every answer leans on.
	TierCritical Tier = iota

	// TierHardware covers Ashlar device and mining documentation.
	TierHardware

	// TierGeneral covers everything else.
	TierGeneral
)

// Keyword tables for tier classification. These are data, not code: tests
// enumerate them, and both the fetch order and the context order are derived
// from the same two sets.
var (
	criticalKeywords = []string{
		"readme",
		"getting-started",
		"quickstart",
		"installation",
		"entropy",
		"faq",
	}

	hardwareKeywords = []string{
		"ashlar",
		"mining",
		"device",
	}
)

// docExtensions are the file suffixes treated as documentation.
var docExtensions = []string{".md", ".txt", ".rst", ".mdx"}

// Classify returns the tier of a file path. Matching is a case-insensitive
// substring test against the keyword tables; critical keywords win over
// hardware keywords.
func Classify(filePath string) Tier {
	lower := strings.ToLower(filePath)
	for _, kw := range criticalKeywords {
		if strings.Contains(lower, kw) {
			return TierCritical
		}
	}
	for _, kw := range hardwareKeywords {
		if strings.Contains(lower, kw) {
			return TierHardware
		}
	}
	return TierGeneral
}

// IsDocumentation reports whether the path carries a documentation extension.
func IsDocumentation(filePath string) bool {
	ext := strings.ToLower(path.Ext(filePath))
	for _, want := range docExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// orderByTier returns the paths reordered into tier order. The sort is
// stable, so paths keep their relative order within a tier.
func orderByTier(paths []string) []string {
	ordered := make([]string, len(paths))
	copy(ordered, paths)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Classify(ordered[i]) < Classify(ordered[j])
	})
	return ordered
}
