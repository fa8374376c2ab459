package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/commands/options"
	"github.com/handiism/beatmap-browser/internal/route"
	"github.com/handiism/beatmap-browser/internal/tui"
)

// NewBrowser returns the root command of the standalone browser binary.
func NewBrowser() *cobra.Command {
	ro := &options.RootOptions{}
	cmd := browseCommand(ro, "beatmap-tui [id|url]")
	options.AddRootArgs(cmd, ro)
	return cmd
}

func addBrowse(topLevel *cobra.Command, ro *options.RootOptions) {
	topLevel.AddCommand(browseCommand(ro, "browse [id|url]"))
}

func browseCommand(ro *options.RootOptions, use string) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:          use,
		Short:        "Browse beatmap sets interactively.",
		SilenceUsage: true,
		Long: `Browse beatmap sets interactively.

Given a set id or link, the browser opens straight into that set, looking
it up on the mirror when it is not part of the first listing.`,
		Example: `
beatmap-dl browse
beatmap-dl browse 39804
beatmap-dl browse --query "freedom dive"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := route.IndexPath
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				initial = route.BeatmapsetPath(id)
			}

			e, err := setup(ro)
			if err != nil {
				return err
			}
			defer e.Close()

			e.logger.Info("browser started", "path", initial, "api", e.mirror.BaseURL())
			return tui.Run(tui.Options{
				Settings:    e.settings,
				Backend:     e.mirror,
				HTTPClient:  e.http,
				Logger:      e.logger,
				InitialPath: initial,
				Query:       strings.TrimSpace(query),
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Initial search query.")
	return cmd
}
