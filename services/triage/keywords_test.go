package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecallQuery(t *testing.T) {
	assert.True(t, isRecallQuery("Do you remember my last report?"))
	assert.True(t, isRecallQuery("like I said LAST TIME"))
	assert.True(t, isRecallQuery("about my earlier report"))
	assert.False(t, isRecallQuery("there is a fire at 12 Oak Street"))
	assert.False(t, isRecallQuery(""))
}

func TestKeywordInjuryType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"he has a second-degree burn", "burn"},
		{"third degree burns on the arm", "burn"},
		{"her leg looks broken", "fracture"},
		{"a deep cut that keeps bleeding", "bleeding"},
		{"he hit his head and is unconscious", "head"},
		{"she fainted", "head"},
		{"we are headed home now", "other"},
		{"they went on ahead", "other"},
		{"my friend fell", "other"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, keywordInjuryType(c.in), "input %q", c.in)
		assert.Equal(t, c.want != "other", matchesInjuryKeyword(c.in), "input %q", c.in)
	}
}

func TestKeywordFamilyOrderDecidesCategory(t *testing.T) {
	// Burn outranks bleeding when both appear.
	assert.Equal(t, "burn", keywordInjuryType("a burn and some bleeding"))
}
