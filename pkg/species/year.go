package species

import (
	"regexp"
	"strings"
)

var (
	yearEndRe    = regexp.MustCompile(`\b(\d{4})$`)
	yearParensRe = regexp.MustCompile(`\((\d+)\)`)
)

// DiscoveredYear extracts the year from a publication citation.
// A 4-digit number at the end of the citation wins, then the first number
// in parentheses. Otherwise Unknown is returned.
func DiscoveredYear(publishedIn string) string {
	s := strings.TrimSpace(publishedIn)
	if m := yearEndRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := yearParensRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return Unknown
}
