// Package ioharvest connects the harvest driver to GBIF, IUCN and the
// JSON store in the data directory.
package ioharvest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/internal/ioextract"
	"github.com/gnames/gnbryo/internal/iogbif"
	"github.com/gnames/gnbryo/internal/ioiucn"
	"github.com/gnames/gnbryo/internal/iostore"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/gnames/gnbryo/pkg/harvest"
	"github.com/gnames/gnbryo/pkg/parserpool"
	"github.com/gnames/gnbryo/pkg/resolver"
	"github.com/gnames/gnbryo/pkg/species"
	"github.com/gnames/gnbryo/pkg/store"
)

// Harvester runs harvest with real upstream services.
type Harvester struct {
	cfg     *config.Config
	gbif    *iogbif.Client
	iucn    harvest.AssessmentSource
	pool    parserpool.Pool
	withBar bool
}

// Option modifies Harvester.
type Option func(*Harvester)

// OptProgressBar shows harvest progress bar on the console.
func OptProgressBar(b bool) Option {
	return func(h *Harvester) {
		h.withBar = b
	}
}

// New creates Harvester. When conservation enrichment is on, a missing
// IUCN token is an error, so nothing is harvested without it.
func New(cfg *config.Config, opts ...Option) (*Harvester, error) {
	res := &Harvester{
		cfg:  cfg,
		gbif: iogbif.New(cfg.GBIF),
	}
	for _, opt := range opts {
		opt(res)
	}

	if cfg.Harvest.WithConservation {
		iucn, err := ioiucn.New(cfg.IUCN, cfg.GBIF.Timeout)
		if err != nil {
			return nil, err
		}
		res.iucn = iucn
	}

	res.pool = parserpool.NewPool(1)
	return res, nil
}

// Close releases the parser pool.
func (h *Harvester) Close() {
	h.pool.Close()
}

func (h *Harvester) driver(st store.Store, hopts ...harvest.Option) *harvest.Driver {
	opts := []harvest.Option{
		harvest.OptLimit(h.cfg.Harvest.Limit),
		harvest.OptCheckpointEvery(h.cfg.Harvest.CheckpointEvery),
		harvest.OptOccurrenceLimit(h.cfg.GBIF.OccurrenceLimit),
		harvest.OptVisitedScope(
			harvest.NewVisitedScope(h.cfg.Harvest.VisitedScope),
		),
		harvest.OptDuplicatePolicy(
			harvest.NewDuplicatePolicy(h.cfg.Harvest.OnDuplicate),
		),
		harvest.OptParser(h.pool),
	}
	if h.iucn != nil {
		opts = append(opts, harvest.OptAssessments(h.iucn))
	}
	opts = append(opts, hopts...)
	res := resolver.New(h.gbif, h.pool)
	return harvest.New(res, h.gbif, st, opts...)
}

// Harvest reads taxon IDs, loads stored state and runs the driver over
// the IDs.
func (h *Harvester) Harvest(ctx context.Context) (harvest.Summary, error) {
	var sum harvest.Summary

	idsPath := h.cfg.IDsPath()
	ids, bad, err := ioextract.ReadIDs(idsPath)
	if err != nil {
		return sum, err
	}
	if bad > 0 {
		gn.Warn("Ignored <em>%d</em> bad lines in <em>%s</em>", bad, idsPath)
	}

	st := iostore.New(h.cfg.DataPath())
	if err = st.Load(); err != nil {
		return sum, err
	}

	total := len(ids)
	if h.cfg.Harvest.Limit > 0 {
		total = min(total, h.cfg.Harvest.Limit)
	}
	slog.Info("Starting harvest",
		"ids_file", idsPath,
		"ids", len(ids),
		"total", total,
		"stored", st.State().Len(),
		"conservation", h.iucn != nil,
	)

	var hopts []harvest.Option
	if h.withBar {
		bar := pb.Full.Start(total)
		bar.Set("prefix", "harvest ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		hopts = append(hopts, harvest.OptProgress(func(processed, _ int) {
			bar.SetCurrent(int64(processed))
		}))
	}

	sum, err = h.driver(st, hopts...).Run(ctx, ids)
	if errors.Is(err, context.Canceled) {
		return sum, CancelledError(sum.Processed, sum.Total, err)
	}
	return sum, err
}

// Show resolves and enriches one taxon without storing it.
func (h *Harvester) Show(ctx context.Context, id int) (*species.Record, error) {
	rec, err := h.driver(nil).Lookup(ctx, id)
	if errors.Is(err, resolver.ErrTaxonNotFound) {
		return nil, iogbif.TaxonNotFoundError(id)
	}
	return rec, err
}
