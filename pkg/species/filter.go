package species

import (
	"strings"
	"unicode"
)

// IsValid returns false for placeholder names, such as species
// hypothesis codes ("SH123456.08FU") or provisional names with numbers
// ("Sphagnum sp. 2").
func IsValid(r *Record) bool {
	name := r.ScientificName
	if strings.HasPrefix(name, "SH") {
		return false
	}
	return !strings.ContainsFunc(name, unicode.IsDigit)
}

// IsComplete checks that species, family and order are known.
// Class is not required.
func IsComplete(r *Record) bool {
	return isKnown(r.Species) && isKnown(r.Family) && isKnown(r.Order)
}

// NeedsConservation returns true when the scientific name has more than
// two words. Monomials and bare binomials without authorship are not sent
// to the assessment service.
func NeedsConservation(r *Record) bool {
	return len(strings.Fields(r.ScientificName)) > 2
}
