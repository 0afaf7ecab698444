package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xs-lang/xscheck/span"
)

func TestSuggestFindsCloseTypo(t *testing.T) {
	got := Suggest("helth", []string{"health", "mana", "speed"})
	assert.Equal(t, "health", got)
}

func TestSuggestReturnsEmptyBelowThreshold(t *testing.T) {
	got := Suggest("zzz", []string{"health", "mana", "speed"})
	assert.Empty(t, got)
}

func TestSuggestReturnsEmptyForNoCandidates(t *testing.T) {
	assert.Empty(t, Suggest("health", nil))
}

func TestWithDidYouMeanIsNoOpForEmptySuggestion(t *testing.T) {
	d := NewUndefinedName(span.Zero, "x")
	out := WithDidYouMean(d, "")
	assert.Equal(t, d, out)
}
