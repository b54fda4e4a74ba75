package iostore

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/gnames/gnbryo/pkg/species"
	"github.com/gnames/gnbryo/pkg/store"
)

// HabitatSep joins countries in the habitats column.
const HabitatSep = "|"

var csvHeader = []string{
	"taxonID", "scientificName", "canonicalName", "nameID",
	"genus", "species", "vernacularName", "publishedIn", "discoveredYear",
	"habitats", "assessmentURL", "assessmentYear", "possiblyExtinct",
	"possiblyExtinctInTheWild", "authority",
}

func csvRow(r species.Record) []string {
	return []string{
		strconv.Itoa(r.TaxonID), r.ScientificName, r.CanonicalName, r.NameID,
		r.Genus, r.Species, r.VernacularName, r.PublishedIn, r.DiscoveredYear,
		strings.Join(r.Habitats, HabitatSep), r.AssessmentURL,
		r.AssessmentYear, strconv.FormatBool(r.PossiblyExtinct),
		strconv.FormatBool(r.PossiblyExtinctInTheWild), r.Authority,
	}
}

// ExportCSV writes stored species records to a CSV file with a header
// and returns the number of written records.
func ExportCSV(st *store.State, path string) (int, error) {
	rows := make([][]string, 0, st.Len()+1)
	rows = append(rows, csvHeader)
	for _, v := range st.Species {
		rows = append(rows, csvRow(v))
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(rows); err != nil {
		return 0, ExportError(path, err)
	}

	if err := writeAtomic(path, []byte(sb.String())); err != nil {
		return 0, ExportError(path, err)
	}
	return st.Len(), nil
}
