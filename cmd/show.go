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
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/internal/ioharvest"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getShowCmd returns the show command.
func getShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show enriched record of one taxon",
		Long: `Resolve one GBIF taxon ID to its accepted name, enrich it with
habitats and conservation data and print the record as JSON. Nothing
is filtered or stored.

Examples:
  gnbryo show 2673452
  gnbryo show 2673452 --no-conservation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShow(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	showCmd.Flags().Bool("no-conservation", false,
		"do not request IUCN assessment")

	return showCmd
}

func runShow(cmd *cobra.Command, arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return fmt.Errorf("taxon ID must be a positive integer, got %q", arg)
	}

	if noCons, _ := cmd.Flags().GetBool("no-conservation"); noCons {
		cfg.Update([]config.Option{config.OptHarvestWithConservation(false)})
	}

	h, err := ioharvest.New(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	rec, err := h.Show(context.Background(), id)
	if err != nil {
		return err
	}

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
