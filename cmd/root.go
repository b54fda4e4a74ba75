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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnbryo/internal/iofs"
	"github.com/gnames/gnbryo/internal/iologger"
	app "github.com/gnames/gnbryo/pkg"
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = getRootCmd()

func getRootCmd() *cobra.Command {
	res := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnbryo",
		Short:   "Harvests bryophyte species data from GBIF and IUCN",
		Long: `gnbryo builds a dataset of bryophyte species.

For every taxon ID of a list it finds the accepted name in GBIF, adds
countries where the species was observed and the latest IUCN Red List
assessment, filters placeholders and incomplete records, and saves
results to species.json with the class/order/family/genus tree in
hierarchy.json.

Commands:
  extract  create the list of taxon IDs from GBIF backbone taxonomy
  harvest  resolve, enrich and store species of the list
  show     resolve and enrich one taxon without storing it
  export   save stored species as CSV

Without a command gnbryo prints its effective configuration.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNBRYO_*, IUCN_API_KEY for the token)
  3. Config file (~/.config/gnbryo/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE:          runRoot,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gnbryo version" prefix
	res.SetVersionTemplate("{{.Version}}\n")
	// -V is consistent with other gn projects
	res.Flags().BoolP("version", "V", false, "version for gnbryo")
	return res
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iofs.EnsureDataDir(cfg.DataPath()); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"command", cmd.Name(),
		"config_file", config.ConfigFilePath(homeDir),
	)
	return nil
}

// runRoot prints effective configuration as YAML.
func runRoot(cmd *cobra.Command, args []string) error {
	out := *cfg
	if out.IUCN.Token != "" {
		out.IUCN.Token = maskToken(out.IUCN.Token)
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	gn.Info("Configuration file: <em>%s</em>", config.ConfigFilePath(homeDir))
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

// maskToken keeps only the last four characters of a secret.
func maskToken(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		getExtractCmd(),
		getHarvestCmd(),
		getShowCmd(),
		getExportCmd(),
	)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds environment variables to persistent configuration
// fields, the same fields config.ToOptions() returns.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("GNBRYO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// GBIF
	v.BindEnv("gbif.url", "GNBRYO_GBIF_URL")
	v.BindEnv("gbif.occurrence_limit", "GNBRYO_GBIF_OCCURRENCE_LIMIT")
	v.BindEnv("gbif.timeout", "GNBRYO_GBIF_TIMEOUT")

	// IUCN, IUCN_API_KEY is kept for scripts written for older tools.
	v.BindEnv("iucn.url", "GNBRYO_IUCN_URL")
	v.BindEnv("iucn.token", "GNBRYO_IUCN_TOKEN", "IUCN_API_KEY")

	// Harvest
	v.BindEnv("harvest.limit", "GNBRYO_HARVEST_LIMIT")
	v.BindEnv("harvest.checkpoint_every", "GNBRYO_HARVEST_CHECKPOINT_EVERY")
	v.BindEnv("harvest.visited_scope", "GNBRYO_HARVEST_VISITED_SCOPE")
	v.BindEnv("harvest.on_duplicate", "GNBRYO_HARVEST_ON_DUPLICATE")
	v.BindEnv("harvest.ids_file", "GNBRYO_HARVEST_IDS_FILE")

	// Extract
	v.BindEnv("extract.phylum", "GNBRYO_EXTRACT_PHYLUM")
	v.BindEnv("extract.backbone_url", "GNBRYO_EXTRACT_BACKBONE_URL")

	// Log
	v.BindEnv("log.level", "GNBRYO_LOG_LEVEL")
	v.BindEnv("log.format", "GNBRYO_LOG_FORMAT")
	v.BindEnv("log.destination", "GNBRYO_LOG_DESTINATION")

	v.BindEnv("data_dir", "GNBRYO_DATA_DIR")

	v.AutomaticEnv()
}
