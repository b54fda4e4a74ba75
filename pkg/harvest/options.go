package harvest

import (
	"github.com/gnames/gnbryo/pkg/parserpool"
)

// VisitedScope decides the lifetime of the visited set of the resolver.
type VisitedScope int

const (
	// BatchScope shares one visited set for the whole batch. A taxon
	// resolved once, even successfully, is not resolved again in the run.
	BatchScope VisitedScope = iota
	// ChainScope uses a new visited set for every input ID, it only
	// guards against synonym cycles.
	ChainScope
)

// NewVisitedScope converts configuration value to VisitedScope.
func NewVisitedScope(s string) VisitedScope {
	if s == "chain" {
		return ChainScope
	}
	return BatchScope
}

// DuplicatePolicy decides what happens to a resolved record whose taxon ID
// is already stored.
type DuplicatePolicy int

const (
	// SkipDuplicates leaves the stored record, the new one is skipped.
	SkipDuplicates DuplicatePolicy = iota
	// AppendDuplicates adds the record again.
	AppendDuplicates
	// ReplaceDuplicates overwrites the stored record.
	ReplaceDuplicates
)

// NewDuplicatePolicy converts configuration value to DuplicatePolicy.
func NewDuplicatePolicy(s string) DuplicatePolicy {
	switch s {
	case "append":
		return AppendDuplicates
	case "replace":
		return ReplaceDuplicates
	default:
		return SkipDuplicates
	}
}

// DefaultCheckpointEvery is the number of merges between flushes.
const DefaultCheckpointEvery = 50

// DefaultOccurrenceLimit is the number of occurrences used for habitats.
const DefaultOccurrenceLimit = 5

// Option configures a Driver.
type Option func(*Driver)

// OptLimit caps the number of IDs in a batch. Zero means no cap.
func OptLimit(i int) Option {
	return func(d *Driver) {
		if i >= 0 {
			d.limit = i
		}
	}
}

// OptCheckpointEvery sets the number of merges between flushes.
func OptCheckpointEvery(i int) Option {
	return func(d *Driver) {
		if i > 0 {
			d.checkpointEvery = i
		}
	}
}

// OptOccurrenceLimit sets the number of occurrences used for habitats.
func OptOccurrenceLimit(i int) Option {
	return func(d *Driver) {
		if i > 0 {
			d.occurrenceLimit = i
		}
	}
}

// OptVisitedScope sets the lifetime of the visited set.
func OptVisitedScope(vs VisitedScope) Option {
	return func(d *Driver) {
		d.scope = vs
	}
}

// OptDuplicatePolicy sets what to do with already stored taxon IDs.
func OptDuplicatePolicy(dp DuplicatePolicy) Option {
	return func(d *Driver) {
		d.duplicates = dp
	}
}

// OptAssessments enables conservation enrichment.
func OptAssessments(as AssessmentSource) Option {
	return func(d *Driver) {
		d.assessments = as
	}
}

// OptParser sets the name parser used to split names for assessments.
func OptParser(p parserpool.Pool) Option {
	return func(d *Driver) {
		d.parser = p
	}
}

// OptProgress sets the progress callback.
func OptProgress(p Progress) Option {
	return func(d *Driver) {
		d.progress = p
	}
}
