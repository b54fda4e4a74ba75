// Package harvest drives the pipeline over a batch of taxon IDs:
// resolve, filter, enrich, gate and merge, with progress reports and
// periodic checkpoints of the aggregation store.
package harvest

import (
	"context"
	"time"

	"github.com/gnames/gnbryo/pkg/species"
)

// State of a batch item.
type State int

const (
	Pending State = iota
	Resolving
	Enriching
	Filtering
	Merged
	Skipped
)

var stateNames = []string{
	"PENDING", "RESOLVING", "ENRICHING", "FILTERING", "MERGED", "SKIPPED",
}

// String returns the name of the state.
func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// SkipReason tells why an item was not merged.
type SkipReason int

const (
	NoSkip SkipReason = iota
	Unresolved
	AlreadyVisited
	Placeholder
	Incomplete
	Duplicate
)

var skipNames = []string{
	"", "unresolved", "already_visited", "placeholder", "incomplete",
	"duplicate",
}

// String returns the name of the reason.
func (r SkipReason) String() string {
	if int(r) < 0 || int(r) >= len(skipNames) {
		return "unknown"
	}
	return skipNames[r]
}

// OccurrenceSource fetches occurrences of a taxon.
type OccurrenceSource interface {
	Occurrences(ctx context.Context, taxonID, limit int) ([]species.Occurrence, error)
}

// AssessmentSource fetches conservation assessments for a genus and a
// specific epithet. A nil report with nil error means nothing was found.
type AssessmentSource interface {
	Assessment(ctx context.Context, genus, species string) (*species.AssessmentReport, error)
}

// Progress receives the number of processed items after every item,
// whatever its outcome.
type Progress func(processed, total int)

// Summary describes the result of a harvest run.
type Summary struct {
	// Total is the number of IDs in the batch after the cap.
	Total int
	// Processed is the number of IDs that reached MERGED or SKIPPED.
	Processed int
	// Merged is the number of records added to the store.
	Merged int
	// Replaced is the number of records that overwrote stored ones.
	Replaced int
	// Skipped counts skipped IDs by reason.
	Skipped map[SkipReason]int
	// Flushes is the number of checkpoints written.
	Flushes int
	// Stored is the size of the species list at the end.
	Stored int
	// Duration of the run.
	Duration time.Duration
}

// SkippedTotal sums all skipped IDs.
func (s Summary) SkippedTotal() int {
	var res int
	for _, v := range s.Skipped {
		res += v
	}
	return res
}

// Fraction is the share of processed IDs.
func (s Summary) Fraction() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Processed) / float64(s.Total)
}
