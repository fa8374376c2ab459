package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/commands/options"
	"github.com/handiism/beatmap-browser/internal/config"
)

func addConfig(topLevel *cobra.Command, ro *options.RootOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addConfigShow(cmd, ro)
	addConfigInit(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addConfigShow(parent *cobra.Command, ro *options.RootOptions) {
	oo := &options.OutputOptions{Format: "yaml"}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings.",
		Example: `
beatmap-dl config show
BEATMAP_API_BASE=https://mirror.example/api beatmap-dl config show -o json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, path, err := loadSettings(ro)
			if err != nil {
				return err
			}
			if oo.Table() {
				oo.Format = "yaml"
			}
			if err := oo.Validate(); err != nil {
				return err
			}
			cmd.PrintErrf("# %s\n", path)
			return oo.Write(cmd.OutOrStdout(), settings)
		},
	}

	cmd.Flags().StringVarP(&oo.Format, "output", "o", "yaml", "Output format. One of 'json' or 'yaml'.")

	parent.AddCommand(cmd)
}

func addConfigInit(parent *cobra.Command, ro *options.RootOptions) {
	force := false

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings to the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ro.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.DefaultSettings().Save(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file.")

	parent.AddCommand(cmd)
}
