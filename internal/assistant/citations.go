package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// Citation rules. Both tables are data so tests can enumerate them: a
// citation is one of the introducing phrases followed by whitespace and a
// bare filename carrying a documentation extension.
var (
	// citationPhrases are matched case-insensitively. Longer phrases come
	// first so "As mentioned in X.md" is not claimed by the bare "In".
	citationPhrases = []string{
		"As mentioned in",
		"According to",
		"Based on",
		"From",
		"In",
	}

	citationExtensions = []string{"md", "txt", "rst", "mdx"}
)

// citationPattern is compiled from the rule tables above.
// Groups: 1 = introducing phrase, 2 = whitespace, 3 = filename.
var citationPattern = regexp.MustCompile(fmt.Sprintf(
	`(?i)\b(%s)(\s+)([A-Za-z0-9][A-Za-z0-9._/-]*\.(?:%s))\b`,
	strings.Join(quoteAll(citationPhrases), "|"),
	strings.Join(citationExtensions, "|"),
))

func quoteAll(phrases []string) []string {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return quoted
}

// Annotator rewrites filename citations in answer text into markdown links
// pointing at the file inside the repository's rendered view.
//
// This is pure text rewriting: it does not verify that a cited file exists
// in the current document set, and it never touches non-matching text.
type Annotator struct {
	blobBase string
}

// NewAnnotator creates an annotator linking into the given repository and
// branch, using GitHub's stable blob URL scheme.
func NewAnnotator(owner, repo, branch string) *Annotator {
	return &Annotator{
		blobBase: fmt.Sprintf("https://github.com/%s/%s/blob/%s", owner, repo, branch),
	}
}

// Annotate rewrites every citation match into "phrase [filename](url)",
// preserving the introducing phrase and filename text verbatim.
func (a *Annotator) Annotate(text string) string {
	return citationPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := citationPattern.FindStringSubmatch(match)
		phrase, ws, filename := groups[1], groups[2], groups[3]
		return fmt.Sprintf("%s%s[%s](%s/%s)", phrase, ws, filename, a.blobBase, filename)
	})
}
