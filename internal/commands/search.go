package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/commands/options"
)

func addSearch(topLevel *cobra.Command, ro *options.RootOptions) {
	oo := &options.OutputOptions{}
	limit := 0

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the mirror for beatmap sets.",
		Long:  "Search the mirror for beatmap sets. Without a query the mirror's default listing is shown.",
		Example: `
beatmap-dl search
beatmap-dl search freedom dive
beatmap-dl search camellia --limit 5 -o json
`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(ro)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			sets, err := e.mirror.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return oo.HandleError(out, err)
			}
			if limit > 0 && len(sets) > limit {
				sets = sets[:limit]
			}

			if !oo.Table() {
				return oo.Write(out, summarizeAll(sets))
			}
			if len(sets) == 0 {
				_, _ = fmt.Fprintln(out, "No Results")
				return nil
			}
			printSets(out, sets)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many sets.")

	topLevel.AddCommand(cmd)
}
