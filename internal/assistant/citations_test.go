package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newAnnotator() *Annotator {
	return NewAnnotator("justentropy-lol", "entropy-docs", "main")
}

func TestAnnotate_NoCitations(t *testing.T) {
	a := newAnnotator()
	for _, text := range []string{
		"",
		"no citations here",
		"the README is great",          // no extension
		"see config.yaml for details",  // extension not in the rule table
		"According to the docs, it works", // phrase without a filename
	} {
		assert.Equal(t, text, a.Annotate(text), "input %q must pass through unchanged", text)
	}
}

func TestAnnotate_BasicMatch(t *testing.T) {
	a := newAnnotator()
	got := a.Annotate("According to README.md, do X")

	assert.Equal(t,
		"According to [README.md](https://github.com/justentropy-lol/entropy-docs/blob/main/README.md), do X",
		got)
}

func TestAnnotate_AllPhrases(t *testing.T) {
	a := newAnnotator()
	tests := []struct {
		in       string
		wantFile string
	}{
		{"According to README.md, yes", "README.md"},
		{"As mentioned in faq.txt, no", "faq.txt"},
		{"Based on setup.rst, maybe", "setup.rst"},
		{"From intro.mdx, always", "intro.mdx"},
		{"In rules.md, never", "rules.md"},
	}

	for _, tt := range tests {
		got := a.Annotate(tt.in)
		assert.Contains(t, got, "["+tt.wantFile+"](", "input %q", tt.in)
		assert.Contains(t, got, "/blob/main/"+tt.wantFile, "input %q", tt.in)
	}
}

func TestAnnotate_CaseInsensitivePhrase(t *testing.T) {
	a := newAnnotator()
	got := a.Annotate("according to README.md, fine")

	// The phrase keeps its original casing.
	assert.Contains(t, got, "according to [README.md]")
}

func TestAnnotate_LongestPhraseWins(t *testing.T) {
	a := newAnnotator()
	got := a.Annotate("As mentioned in guide.md, proceed")

	// "As mentioned in" must claim the match before the bare "In" does.
	assert.Contains(t, got, "As mentioned in [guide.md]")
}

func TestAnnotate_PathWithDirectories(t *testing.T) {
	a := newAnnotator()
	got := a.Annotate("According to docs/mining/rewards.md, payouts vary")

	assert.Contains(t, got,
		"[docs/mining/rewards.md](https://github.com/justentropy-lol/entropy-docs/blob/main/docs/mining/rewards.md)")
}

func TestAnnotate_MultipleCitations(t *testing.T) {
	a := newAnnotator()
	got := a.Annotate("According to README.md, see also Based on faq.md for more")

	assert.Contains(t, got, "[README.md](")
	assert.Contains(t, got, "[faq.md](")
}

func TestAnnotate_SurroundingTextUntouched(t *testing.T) {
	a := newAnnotator()
	in := "Prefix words. According to README.md, do X. Suffix words."
	got := a.Annotate(in)

	assert.Contains(t, got, "Prefix words. ")
	assert.Contains(t, got, ", do X. Suffix words.")
}
