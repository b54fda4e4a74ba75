package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gnbryo/pkg/parserpool"
	"github.com/gnames/gnbryo/pkg/resolver"
	"github.com/gnames/gnbryo/pkg/species"
	"github.com/gnames/gnbryo/pkg/store"
)

// Driver runs the harvest pipeline. It is sequential: every upstream call
// blocks, and the store is only touched between items.
type Driver struct {
	resolver    *resolver.Resolver
	occurrences OccurrenceSource
	assessments AssessmentSource
	store       store.Store
	parser      parserpool.Pool
	progress    Progress

	limit           int
	checkpointEvery int
	occurrenceLimit int
	scope           VisitedScope
	duplicates      DuplicatePolicy
}

// New creates a Driver. Without OptAssessments records are not enriched
// with conservation data.
func New(
	res *resolver.Resolver,
	occ OccurrenceSource,
	st store.Store,
	opts ...Option,
) *Driver {
	d := &Driver{
		resolver:        res,
		occurrences:     occ,
		store:           st,
		checkpointEvery: DefaultCheckpointEvery,
		occurrenceLimit: DefaultOccurrenceLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes IDs in order, never more than the limit. The store has to
// be loaded already. It is flushed every checkpointEvery merges and once
// at the end, also when the context is cancelled.
func (d *Driver) Run(ctx context.Context, ids []int) (Summary, error) {
	if d.limit > 0 && len(ids) > d.limit {
		ids = ids[:d.limit]
	}

	start := time.Now()
	res := Summary{
		Total:   len(ids),
		Skipped: make(map[SkipReason]int),
	}

	visited := resolver.NewVisited()
	var accepted int
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return d.finish(res, start, err)
		}

		if d.scope == ChainScope {
			visited = resolver.NewVisited()
		}

		state, reason := d.process(ctx, id, visited)
		res.Processed++
		switch {
		case state == Merged && reason == Duplicate:
			res.Replaced++
			accepted++
		case state == Merged:
			res.Merged++
			accepted++
		default:
			res.Skipped[reason]++
		}

		if d.progress != nil {
			d.progress(res.Processed, res.Total)
		}
		slog.Debug("Harvest progress",
			"taxon_id", id,
			"state", state.String(),
			"reason", reason.String(),
			"progress", fmt.Sprintf("%.3f", res.Fraction()),
		)

		if state == Merged && accepted%d.checkpointEvery == 0 {
			if err := d.store.Flush(); err != nil {
				return res, err
			}
			res.Flushes++
			slog.Info("Checkpoint written",
				"records", d.store.State().Len(),
				"processed", res.Processed,
			)
		}
	}

	return d.finish(res, start, nil)
}

func (d *Driver) finish(
	res Summary,
	start time.Time,
	runErr error,
) (Summary, error) {
	res.Duration = time.Since(start)
	if err := d.store.Flush(); err != nil {
		return res, errors.Join(runErr, err)
	}
	res.Flushes++
	res.Stored = d.store.State().Len()
	return res, runErr
}

// Lookup resolves and enriches one taxon with a fresh visited set. The
// record is neither filtered nor stored.
func (d *Driver) Lookup(ctx context.Context, id int) (*species.Record, error) {
	rec, err := d.resolver.Resolve(ctx, id, resolver.NewVisited())
	if err != nil {
		return nil, err
	}
	d.enrich(ctx, rec, id)
	return rec, nil
}

// process moves one ID through the pipeline and returns its final state.
// Merged with Duplicate reason means a stored record was replaced.
func (d *Driver) process(
	ctx context.Context,
	id int,
	visited resolver.Visited,
) (State, SkipReason) {
	rec, err := d.resolver.Resolve(ctx, id, visited)
	if err != nil {
		if errors.Is(err, resolver.ErrAlreadyVisited) {
			slog.Debug("Skipping already processed taxon",
				"taxon_id", id, "reason", err)
			return Skipped, AlreadyVisited
		}
		slog.Warn("Cannot resolve taxon", "taxon_id", id, "error", err)
		return Skipped, Unresolved
	}

	if !species.IsValid(rec) {
		slog.Info("Skipping placeholder species",
			"taxon_id", id, "name", rec.ScientificName)
		return Skipped, Placeholder
	}

	isDup := d.store.Has(rec.TaxonID)
	if isDup && d.duplicates == SkipDuplicates {
		slog.Info("Skipping stored species",
			"taxon_id", rec.TaxonID, "name", rec.ScientificName)
		return Skipped, Duplicate
	}

	d.enrich(ctx, rec, id)

	if !species.IsComplete(rec) {
		slog.Info("Skipping species with incomplete classification",
			"taxon_id", rec.TaxonID,
			"name", rec.ScientificName,
			"species", rec.Species,
			"family", rec.Family,
			"order", rec.Order,
		)
		return Skipped, Incomplete
	}

	if isDup && d.duplicates == ReplaceDuplicates {
		d.store.Replace(*rec)
		return Merged, Duplicate
	}
	d.store.Merge(*rec)
	return Merged, NoSkip
}

// enrich adds conservation data and habitats. Occurrences are requested
// for the input ID, for a synonym it is the synonym's own key.
func (d *Driver) enrich(ctx context.Context, rec *species.Record, inputID int) {
	if d.assessments != nil && species.NeedsConservation(rec) {
		d.conservation(ctx, rec)
	}

	occs, err := d.occurrences.Occurrences(ctx, inputID, d.occurrenceLimit)
	if err != nil {
		slog.Warn("Cannot fetch occurrences",
			"taxon_id", rec.TaxonID, "input_id", inputID, "error", err)
	}
	rec.Habitats = species.Habitats(occs)
}

func (d *Driver) conservation(ctx context.Context, rec *species.Record) {
	genus, sp, ok := d.genusSpecies(rec.ScientificName)
	if !ok {
		return
	}

	rep, err := d.assessments.Assessment(ctx, genus, sp)
	if err != nil {
		slog.Warn("Cannot fetch conservation assessment",
			"taxon_id", rec.TaxonID,
			"name", rec.ScientificName,
			"error", err,
		)
		return
	}

	c := rep.Conservation()
	if c == nil {
		slog.Info("No assessment found",
			"taxon_id", rec.TaxonID, "name", rec.ScientificName)
		return
	}
	c.Apply(rec)
}

func (d *Driver) genusSpecies(name string) (string, string, bool) {
	if d.parser != nil {
		return d.parser.GenusSpecies(name)
	}
	words := strings.Fields(name)
	if len(words) < 2 {
		return "", "", false
	}
	return words[0], words[1], true
}
