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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/internal/ioharvest"
	"github.com/gnames/gnbryo/internal/iologger"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getHarvestCmd returns the harvest command.
func getHarvestCmd() *cobra.Command {
	harvestCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest species data for a list of taxon IDs",
		Long: `Resolve, enrich and store species for taxon IDs of a list.

For every ID this command:
  1. Finds the accepted name in GBIF, following synonyms
  2. Drops placeholder names (digits, 'SH' prefix)
  3. Adds the latest IUCN Red List assessment (names with authors)
  4. Adds countries from a few GBIF occurrences as habitats
  5. Drops records without species, family or order
  6. Merges the record into species.json and hierarchy.json

Results are saved every --checkpoint-every merged records and at the
end, also when the run is interrupted with Ctrl-C.

IUCN requires a token (GNBRYO_IUCN_TOKEN or IUCN_API_KEY), use
--no-conservation to harvest without it.

Examples:
  gnbryo harvest
  gnbryo harvest -i ids.txt -l 0
  gnbryo harvest --on-duplicate replace --no-conservation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runHarvest(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	harvestCmd.Flags().StringP("ids-file", "i", "",
		"file with taxon IDs, one per line")
	harvestCmd.Flags().IntP("limit", "l", 0,
		"maximum number of IDs to process (0 = all)")
	harvestCmd.Flags().IntP("checkpoint-every", "c", 0,
		"save results after this many merged records")
	harvestCmd.Flags().String("visited-scope", "",
		"lifetime of visited IDs: batch or chain")
	harvestCmd.Flags().String("on-duplicate", "",
		"stored species: skip, append or replace")
	harvestCmd.Flags().Bool("no-conservation", false,
		"do not request IUCN assessments")

	return harvestCmd
}

func harvestOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	res = append(res, stringFlag(cmd, "ids-file", config.OptHarvestIDsFile)...)
	res = append(res, intFlag(cmd, "limit", config.OptHarvestLimit)...)
	res = append(res,
		intFlag(cmd, "checkpoint-every", config.OptHarvestCheckpointEvery)...)
	res = append(res,
		stringFlag(cmd, "visited-scope", config.OptHarvestVisitedScope)...)
	res = append(res,
		stringFlag(cmd, "on-duplicate", config.OptHarvestOnDuplicate)...)
	if noCons, _ := cmd.Flags().GetBool("no-conservation"); noCons {
		res = append(res, config.OptHarvestWithConservation(false))
	}
	return res
}

func runHarvest(cmd *cobra.Command) error {
	cfg.Update(harvestOptions(cmd))

	runID := uuid.NewString()
	slog.SetDefault(iologger.WithRun(runID, "harvest"))

	h, err := ioharvest.New(cfg, ioharvest.OptProgressBar(true))
	if err != nil {
		return err
	}
	defer h.Close()

	if !cfg.Harvest.WithConservation {
		gn.Warn("Conservation assessments are skipped")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	gn.Info("Harvesting taxa from <em>%s</em>", cfg.IDsPath())
	sum, err := h.Harvest(ctx)
	if sum.Total > 0 {
		ioharvest.Log(sum)
		fmt.Fprintln(os.Stderr, ioharvest.Report(sum))
	}
	if err != nil {
		return err
	}

	gn.Info("Species are saved in <em>%s</em>", cfg.DataPath())
	return nil
}
