// Package ioextract creates the list of taxon IDs for harvesting. IDs
// come either from a local copy of GBIF backbone taxonomy or from GBIF
// species search.
package ioextract

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gnames/gnbryo/pkg/config"
	"github.com/gnames/gnbryo/pkg/parserpool"
	"github.com/gnames/gnsys"
)

// Searcher finds species keys of a phylum remotely.
type Searcher interface {
	PhylumKey(ctx context.Context, name string) (int, error)
	Search(ctx context.Context, phylumKey, limit int) ([]int, error)
}

// Result describes one extraction.
type Result struct {
	// Rows is the number of read taxa rows.
	Rows int
	// Kept is the number of written taxon IDs.
	Kept int
	// Malformed is the number of rows that could not be used.
	Malformed int
	// IDsPath is the path of the written ID list.
	IDsPath string
	// TaxaPath is the path of taxa.csv, empty for species search.
	TaxaPath string
	// Duration of the extraction.
	Duration time.Duration
}

// Extractor writes taxon_ids.txt and taxa.csv into the data directory.
type Extractor struct {
	phylum      string
	backboneURL string
	cacheDir    string
	dataDir     string
	parser      parserpool.Pool
	http        *http.Client
	withBar     bool
}

// Option modifies Extractor.
type Option func(*Extractor)

// OptProgressBar shows download progress bar on the console.
func OptProgressBar(b bool) Option {
	return func(e *Extractor) {
		e.withBar = b
	}
}

// OptHTTPClient sets the client used for the backbone download.
func OptHTTPClient(c *http.Client) Option {
	return func(e *Extractor) {
		e.http = c
	}
}

// New creates Extractor. The parser pool provides canonical forms of
// names for taxa.csv.
func New(cfg *config.Config, parser parserpool.Pool, opts ...Option) *Extractor {
	res := &Extractor{
		phylum:      cfg.Extract.Phylum,
		backboneURL: cfg.Extract.BackboneURL,
		cacheDir:    config.CacheDir(cfg.HomeDir),
		dataDir:     cfg.DataPath(),
		parser:      parser,
		http:        &http.Client{},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// FromBackbone reads taxa of the phylum from Taxon.tsv. If taxonPath is
// empty, Taxon.tsv is taken from the cache directory, downloading the
// backbone archive if needed.
func (e *Extractor) FromBackbone(
	ctx context.Context,
	taxonPath string,
) (Result, error) {
	start := time.Now()
	var res Result

	for _, dir := range []string{e.cacheDir, e.dataDir} {
		if err := gnsys.MakeDir(dir); err != nil {
			return res, WriteError(dir, err)
		}
	}

	if taxonPath == "" {
		var err error
		taxonPath, err = e.ensureTaxonFile(ctx, e.cacheDir)
		if err != nil {
			return res, err
		}
	}

	res, err := e.extract(ctx, taxonPath)
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}
	if res.Kept == 0 {
		return res, NoTaxaError(e.phylum)
	}

	slog.Info("Extracted taxa",
		"phylum", e.phylum,
		"rows", res.Rows,
		"kept", res.Kept,
		"malformed", res.Malformed,
	)
	return res, nil
}

// FromSearch writes up to limit accepted species keys of the phylum
// found by GBIF species search.
func (e *Extractor) FromSearch(
	ctx context.Context,
	src Searcher,
	limit int,
) (Result, error) {
	start := time.Now()
	var res Result

	key, err := src.PhylumKey(ctx, e.phylum)
	if err != nil {
		return res, err
	}
	if key == 0 {
		return res, NoTaxaError(e.phylum)
	}

	ids, err := src.Search(ctx, key, limit)
	if err != nil {
		return res, err
	}
	if len(ids) == 0 {
		return res, NoTaxaError(e.phylum)
	}

	if err = gnsys.MakeDir(e.dataDir); err != nil {
		return res, WriteError(e.dataDir, err)
	}
	res.IDsPath = config.IDsFilePath(e.dataDir)
	if err = writeIDs(res.IDsPath, ids); err != nil {
		return res, err
	}

	res.Rows = len(ids)
	res.Kept = len(ids)
	res.Duration = time.Since(start)
	slog.Info("Found species by search",
		"phylum", e.phylum, "phylum_key", key, "kept", res.Kept)
	return res, nil
}

func writeIDs(path string, ids []int) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	w := bufio.NewWriter(f)
	for _, id := range ids {
		fmt.Fprintln(w, strconv.Itoa(id))
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return WriteError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func (e *Extractor) outPaths() (string, string) {
	return config.IDsFilePath(e.dataDir),
		filepath.Join(e.dataDir, config.TaxaCSVFile)
}
