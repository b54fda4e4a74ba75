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
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/internal/iostore"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	var output string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored species to CSV",
		Long: `Write species from species.json to a CSV file. Habitats are
joined with '|'. By default the file is species.csv in the data
directory.

Examples:
  gnbryo export
  gnbryo export -o /tmp/mosses.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	exportCmd.Flags().StringVarP(&output, "output", "o", "",
		"path of the CSV file")

	return exportCmd
}

func runExport(output string) error {
	st := iostore.New(cfg.DataPath())
	if err := st.Load(); err != nil {
		return err
	}

	if output == "" {
		output = filepath.Join(cfg.DataPath(), config.SpeciesCSVFile)
	}
	n, err := iostore.ExportCSV(st.State(), output)
	if err != nil {
		return err
	}

	gn.Info("Exported <em>%s</em> species to <em>%s</em>",
		humanize.Comma(int64(n)), output)
	return nil
}
