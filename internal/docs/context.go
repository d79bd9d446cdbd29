package docs

import (
	"sort"
	"strings"
)

// MaxContextChars is the character budget for the assembled context blob.
// Sections are appended only while the running total stays strictly below
// this ceiling.
const MaxContextChars = 150_000

// BuildContext assembles the document set into a single text blob for the
// completion prompt. Files appear in tier order (critical, hardware,
// general), lexicographically within a tier, each as a delimited section:
//
//	=== path ===
//	content
//
// Assembly stops at the first section that would push the total past the
// budget; later, possibly more relevant, files are dropped silently. This
// trades recall for determinism and is deliberate.
//
// The result is byte-for-byte deterministic for a given document set.
// An empty document set yields the empty string, which callers must treat
// as "no context available".
func BuildContext(documents DocumentSet) string {
	if len(documents) == 0 {
		return ""
	}

	// Map iteration order is random; sort before tier ordering so the
	// output is deterministic.
	paths := make([]string, 0, len(documents))
	for p := range documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var parts []string
	total := 0
	for _, p := range orderByTier(paths) {
		section := "=== " + p + " ===\n" + documents[p] + "\n\n"
		if total+len(section) >= MaxContextChars {
			break
		}
		parts = append(parts, section)
		total += len(section)
	}

	return strings.Join(parts, "\n")
}
