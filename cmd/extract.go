/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/internal/ioextract"
	"github.com/gnames/gnbryo/internal/iogbif"
	"github.com/gnames/gnbryo/internal/iologger"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/gnames/gnbryo/pkg/parserpool"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getExtractCmd returns the extract command.
func getExtractCmd() *cobra.Command {
	var (
		taxonPath string
		search    int
	)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Create the list of taxon IDs for harvest",
		Long: `Create taxon_ids.txt in the data directory.

By default the list contains all taxa of the phylum (Bryophyta) from GBIF
backbone taxonomy. Taxon.tsv of the backbone is downloaded and cached on
the first run. The taxa are also saved to taxa.csv with their canonical
names and classification.

With --search the list is built from GBIF species search instead. It
contains accepted species only and needs no download.

Examples:
  gnbryo extract
  gnbryo extract -t ~/backbone/Taxon.tsv
  gnbryo extract -p Marchantiophyta
  gnbryo extract --search 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExtract(cmd, taxonPath, search)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	extractCmd.Flags().StringVarP(&taxonPath, "taxon-file", "t", "",
		"path to Taxon.tsv of GBIF backbone")
	extractCmd.Flags().StringP("phylum", "p", "",
		"phylum of extracted taxa")
	extractCmd.Flags().IntVar(&search, "search", 0,
		"use GBIF species search for this many species")

	return extractCmd
}

func runExtract(cmd *cobra.Command, taxonPath string, search int) error {
	cfg.Update(stringFlag(cmd, "phylum", config.OptExtractPhylum))
	slog.SetDefault(iologger.WithRun(uuid.NewString(), "extract"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool := parserpool.NewPool(runtime.NumCPU())
	defer pool.Close()
	e := ioextract.New(cfg, pool, ioextract.OptProgressBar(true))

	var res ioextract.Result
	var err error
	if search > 0 {
		gn.Info("Searching GBIF for <em>%s</em> species", cfg.Extract.Phylum)
		res, err = e.FromSearch(ctx, iogbif.New(cfg.GBIF), search)
	} else {
		gn.Info("Extracting <em>%s</em> taxa from GBIF backbone", cfg.Extract.Phylum)
		res, err = e.FromBackbone(ctx, taxonPath)
	}
	if err != nil {
		return err
	}

	gn.Info("Wrote <em>%s</em> taxon IDs to <em>%s</em> in %s",
		humanize.Comma(int64(res.Kept)),
		res.IDsPath,
		gnfmt.TimeString(res.Duration.Seconds()),
	)
	if res.Malformed > 0 {
		gn.Warn("Skipped <em>%s</em> malformed rows",
			humanize.Comma(int64(res.Malformed)))
	}
	return nil
}
