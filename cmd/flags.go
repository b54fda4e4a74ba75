package cmd

import (
	"github.com/gnames/gnbryo/pkg/config"
	"github.com/spf13/cobra"
)

// intFlag returns an option if the flag was set on the command line.
func intFlag(
	cmd *cobra.Command,
	name string,
	opt func(int) config.Option,
) []config.Option {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	i, _ := cmd.Flags().GetInt(name)
	return []config.Option{opt(i)}
}

// stringFlag returns an option if the flag was set on the command line.
func stringFlag(
	cmd *cobra.Command,
	name string,
	opt func(string) config.Option,
) []config.Option {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	s, _ := cmd.Flags().GetString(name)
	return []config.Option{opt(s)}
}
