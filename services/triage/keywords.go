package triage

import (
	"regexp"
	"strings"
)

// Closed keyword sets for recall detection and injury corroboration. These
// are deliberately small and documented so a real classifier can replace
// them without touching the state machine contract.

// recallPhrases flag an explicit request to reference a prior report.
var recallPhrases = []string{"remember", "previous", "last time", "earlier report"}

func isRecallQuery(text string) bool {
	t := strings.ToLower(text)
	for _, p := range recallPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// Injury keyword families, checked against the raw utterance to corroborate
// the triage judgment. Order decides the assigned category.
var injuryFamilies = []struct {
	category string
	pattern  *regexp.Regexp
}{
	{"burn", regexp.MustCompile(`second[- ]?degree|third[- ]?degree|burn`)},
	{"fracture", regexp.MustCompile(`fracture|broken`)},
	{"bleeding", regexp.MustCompile(`bleeding|blood|cut|wound|laceration`)},
	{"head", regexp.MustCompile(`\bhead\b|concussion|unconscious|fainted`)},
}

// matchesInjuryKeyword reports whether any injury family matches.
func matchesInjuryKeyword(text string) bool {
	t := strings.ToLower(text)
	for _, f := range injuryFamilies {
		if f.pattern.MatchString(t) {
			return true
		}
	}
	return false
}

// keywordInjuryType returns the first matching family's category, or "other".
func keywordInjuryType(text string) string {
	t := strings.ToLower(text)
	for _, f := range injuryFamilies {
		if f.pattern.MatchString(t) {
			return f.category
		}
	}
	return "other"
}
