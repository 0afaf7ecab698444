package diag

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SimilarityThreshold is the minimum normalized match score (0..1) a
// candidate must clear for Suggest to return it.
const SimilarityThreshold = 0.5

// Suggest returns the closest in-scope identifier to name by fuzzy rank,
// or "" if no candidate clears SimilarityThreshold. Used to attach a
// "did you mean" help note to UndefinedName diagnostics; it never
// changes whether the diagnostic fires.
func Suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	best := ranks[0]
	maxLen := len(name)
	if len(best.Target) > maxLen {
		maxLen = len(best.Target)
	}
	if maxLen == 0 {
		return ""
	}
	score := 1 - float64(best.Distance)/float64(maxLen)
	if score < SimilarityThreshold {
		return ""
	}
	return best.Target
}

// WithDidYouMean attaches suggestion as a help note, in the shape the
// CLI renders as "did you mean `%s`?". A no-op when suggestion is empty.
func WithDidYouMean(d Diagnostic, suggestion string) Diagnostic {
	if suggestion == "" {
		return d
	}
	d.Help = "did you mean `" + suggestion + "`?"
	return d
}
