// Package species contains entities of the harvest pipeline and the pure
// rules applied to them: placeholder and completeness filters, discovered
// year extraction, habitat summaries and conservation assessment selection.
package species

// Unknown fills data gaps of upstream records.
const Unknown = "Unknown"

// Taxon is a name usage as returned by the taxon lookup service.
type Taxon struct {
	// Key is the taxon identifier of the usage.
	Key int `json:"key"`

	// TaxonomicStatus is "ACCEPTED", "SYNONYM", "HETEROTYPIC_SYNONYM" etc.
	TaxonomicStatus string `json:"taxonomicStatus"`

	// AcceptedKey points to the accepted usage of a synonym. Zero if absent.
	AcceptedKey int `json:"acceptedKey"`

	ScientificName string `json:"scientificName"`
	Genus          string `json:"genus"`
	Species        string `json:"species"`
	Family         string `json:"family"`
	Order          string `json:"order"`
	Class          string `json:"class"`
	VernacularName string `json:"vernacularName"`
	PublishedIn    string `json:"publishedIn"`
}

// Occurrence is an observation of a taxon. Only the country is used.
type Occurrence struct {
	Country string `json:"country"`
}

// Record is a resolved and enriched species.
type Record struct {
	// TaxonID of the accepted name the record was resolved to.
	TaxonID int `json:"taxonID"`

	ScientificName string `json:"scientificName"`

	// CanonicalName is the scientific name without authorship.
	CanonicalName string `json:"canonicalName,omitempty"`

	// NameID is UUIDv5 of the canonical name.
	NameID string `json:"nameID,omitempty"`

	Genus   string `json:"genus"`
	Species string `json:"species"`

	// Family, Order and Class are removed when the record is stored,
	// they are kept in the hierarchy instead.
	Family string `json:"family,omitempty"`
	Order  string `json:"order,omitempty"`
	Class  string `json:"class,omitempty"`

	VernacularName string `json:"vernacularName,omitempty"`
	PublishedIn    string `json:"publishedIn"`
	DiscoveredYear string `json:"discoveredYear"`

	// Habitats is a sorted set of countries where the species was observed.
	Habitats []string `json:"habitats"`

	AssessmentURL            string `json:"assessmentURL,omitempty"`
	AssessmentYear           string `json:"assessmentYear,omitempty"`
	PossiblyExtinct          bool   `json:"possiblyExtinct"`
	PossiblyExtinctInTheWild bool   `json:"possiblyExtinctInTheWild"`
	Authority                string `json:"authority,omitempty"`
}

// NewRecord converts an accepted taxon into a Record. Empty fields are
// filled with Unknown.
func NewRecord(t *Taxon) *Record {
	return &Record{
		TaxonID:        t.Key,
		ScientificName: orUnknown(t.ScientificName),
		Genus:          orUnknown(t.Genus),
		Species:        orUnknown(t.Species),
		Family:         orUnknown(t.Family),
		Order:          orUnknown(t.Order),
		Class:          orUnknown(t.Class),
		VernacularName: orUnknown(t.VernacularName),
		PublishedIn:    orUnknown(t.PublishedIn),
		DiscoveredYear: DiscoveredYear(t.PublishedIn),
		Habitats:       []string{},
	}
}

// StripRanks removes ranks that are promoted to the hierarchy.
func (r *Record) StripRanks() {
	r.Family = ""
	r.Order = ""
	r.Class = ""
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

func isKnown(s string) bool {
	return s != "" && s != Unknown
}
