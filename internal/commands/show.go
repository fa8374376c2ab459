package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/commands/options"
	"github.com/handiism/beatmap-browser/internal/mirror"
)

func addShow(topLevel *cobra.Command, ro *options.RootOptions) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id|url>",
		Short: "Show a beatmap set and its difficulties.",
		Example: `
beatmap-dl show 39804
beatmap-dl show https://osu.ppy.sh/beatmapsets/39804 -o yaml
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			e, err := setup(ro)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			set, err := e.mirror.Beatmapset(cmd.Context(), id)
			if errors.Is(err, mirror.ErrNotFound) {
				err = fmt.Errorf("beatmap set %d not found", id)
			}
			if err != nil {
				return oo.HandleError(out, err)
			}

			if !oo.Table() {
				return oo.Write(out, summarize(set))
			}
			printSet(out, set, e.mirror.DownloadURL(set.ID, e.settings.NoVideo))
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
