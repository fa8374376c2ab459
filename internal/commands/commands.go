package commands

import (
	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/commands/options"
)

// New returns the beatmap-dl root command.
func New() *cobra.Command {
	ro := &options.RootOptions{}

	cmd := &cobra.Command{
		Use:          "beatmap-dl",
		Short:        "Search, inspect and download osu! beatmap sets from a mirror.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddRootArgs(cmd, ro)

	AddCommands(cmd, ro)
	return cmd
}

func AddCommands(topLevel *cobra.Command, ro *options.RootOptions) {
	addSearch(topLevel, ro)
	addShow(topLevel, ro)
	addDownload(topLevel, ro)
	addBrowse(topLevel, ro)
	addConfig(topLevel, ro)
	addVersion(topLevel)
}
