package triage

import (
	"regexp"
	"strings"
)

// streetPattern matches "<house number> <up to five words> <street-type
// word>" including common abbreviations and German variants. Anchoring on
// the house number keeps surrounding sentence words out of the capture.
var streetPattern = regexp.MustCompile(
	`(?i)(\d+[a-z]?(?:\s+[A-Za-z\-]+){1,5}\s+(?:street|st\.?|ave(?:nue)?\.?|road|rd\.?|blvd\.?|lane|ln\.?|way|platz|straße|strasse))\b`,
)

// extractAddressPattern is the deterministic fallback when slot parsing
// yields no address. Returns "" when nothing matches; it never errors, so
// re-running it on address-free text is a no-op.
func extractAddressPattern(text string) string {
	m := streetPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}
	return m[1]
}
