package incidentRepo

import (
	"regexp"
	"strings"
)

var (
	stAbbrev   = regexp.MustCompile(`\bst\b\.?`)
	rdAbbrev   = regexp.MustCompile(`\brd\b\.?`)
	aveAbbrev  = regexp.MustCompile(`\bave\b\.?`)
	lnAbbrev   = regexp.MustCompile(`\bln\b\.?`)
	hyphenated = regexp.MustCompile(`(\w)-(\w)`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// normalizeAddress folds abbreviations and diacritic variants so that
// "12 Oak St." and "12 oak street" compare equal.
func normalizeAddress(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return ""
	}
	t = strings.ReplaceAll(t, "straße", "strasse")
	t = stAbbrev.ReplaceAllString(t, "street")
	t = rdAbbrev.ReplaceAllString(t, "road")
	t = aveAbbrev.ReplaceAllString(t, "avenue")
	t = lnAbbrev.ReplaceAllString(t, "lane")
	t = hyphenated.ReplaceAllString(t, "$1 $2")
	t = multiSpace.ReplaceAllString(t, " ")
	return t
}

// similarEnough matches normalized addresses by equality or substring
// containment. The containment rule is coarse ("5 oak street" collides with
// "125 oak street"); a known precision gap in the dedup contract.
func similarEnough(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(b, a) || strings.Contains(a, b)
}
