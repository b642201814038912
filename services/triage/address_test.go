package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAddressPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"we are at 12 Oak Street", "12 Oak Street"},
		{"12 oak st", "12 oak st"},
		{"come to 45 Birch Avenue quickly", "45 Birch Avenue"},
		{"it's at 7 Bahnhof Strasse", "7 Bahnhof Strasse"},
		{"he lives somewhere on Oak Street", ""},
		{"someone is hurt", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, extractAddressPattern(c.in), "input %q", c.in)
	}
}

func TestExtractAddressPatternIdempotent(t *testing.T) {
	// Re-running on text without an address must keep returning "".
	assert.Empty(t, extractAddressPattern("it hurts a lot"))
	assert.Empty(t, extractAddressPattern("it hurts a lot"))
}
