package species

import (
	"slices"
	"strings"
)

// Habitats returns the sorted set of countries of the occurrences.
// Occurrences without a country are ignored.
func Habitats(occs []Occurrence) []string {
	set := make(map[string]struct{})
	for _, v := range occs {
		country := strings.TrimSpace(v.Country)
		if !isKnown(country) {
			continue
		}
		set[country] = struct{}{}
	}

	res := make([]string, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}
