package species

import (
	"strconv"
)

// Assessment is one conservation assessment of a taxon.
type Assessment struct {
	Latest                   bool
	URL                      string
	YearPublished            string
	PossiblyExtinct          bool
	PossiblyExtinctInTheWild bool
}

// CommonName is a vernacular name given by the assessment service.
type CommonName struct {
	Name string
	Main bool
}

// AssessmentReport is the answer of the assessment service for one
// genus/species pair.
type AssessmentReport struct {
	Assessments []Assessment
	Authority   string
	CommonNames []CommonName
}

// Conservation is the latest conservation status of a species.
type Conservation struct {
	URL                      string
	Year                     string
	PossiblyExtinct          bool
	PossiblyExtinctInTheWild bool
	Authority                string
	CommonName               string
}

// LatestAssessment returns the assessment flagged as latest. If none is
// flagged, the one with the greatest publication year is used.
// The second value is false when there are no assessments.
func LatestAssessment(aa []Assessment) (Assessment, bool) {
	if len(aa) == 0 {
		return Assessment{}, false
	}
	for _, v := range aa {
		if v.Latest {
			return v, true
		}
	}

	res := aa[0]
	resYear, _ := strconv.Atoi(res.YearPublished)
	for _, v := range aa[1:] {
		year, _ := strconv.Atoi(v.YearPublished)
		if year > resYear {
			res, resYear = v, year
		}
	}
	return res, true
}

// Conservation summarizes the report. It returns nil if the report has
// no assessments.
func (ar *AssessmentReport) Conservation() *Conservation {
	if ar == nil {
		return nil
	}
	a, ok := LatestAssessment(ar.Assessments)
	if !ok {
		return nil
	}

	res := Conservation{
		URL:                      a.URL,
		Year:                     a.YearPublished,
		PossiblyExtinct:          a.PossiblyExtinct,
		PossiblyExtinctInTheWild: a.PossiblyExtinctInTheWild,
		Authority:                orUnknown(ar.Authority),
		CommonName:               Unknown,
	}
	for _, v := range ar.CommonNames {
		if v.Main && v.Name != "" {
			res.CommonName = v.Name
			break
		}
	}
	return &res
}

// Apply copies conservation data into the record.
//
// The main common name replaces the vernacular name only if the record
// already had one. Records without a vernacular name stay without it.
func (c *Conservation) Apply(r *Record) {
	r.AssessmentURL = c.URL
	r.AssessmentYear = c.Year
	r.PossiblyExtinct = c.PossiblyExtinct
	r.PossiblyExtinctInTheWild = c.PossiblyExtinctInTheWild
	r.Authority = c.Authority

	if isKnown(r.VernacularName) && isKnown(c.CommonName) {
		r.VernacularName = c.CommonName
	}
}
