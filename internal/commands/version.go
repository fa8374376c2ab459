package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/commands/options"
)

// Version is set at build time with -ldflags "-X ...commands.Version=v1.2.3".
var Version = "dev"

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Go      string `json:"go" yaml:"go"`
}

func buildInfo() versionInfo {
	v := versionInfo{Version: Version, Commit: "none", Go: runtime.Version()}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				v.Commit = s.Value
			}
		}
	}
	return v
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the beatmap-dl version.",
		Example: `
beatmap-dl version
beatmap-dl version -o json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := oo.Validate(); err != nil {
				return err
			}
			v := buildInfo()
			out := cmd.OutOrStdout()
			switch {
			case shortened:
				_, err := fmt.Fprintln(out, v.Version)
				return err
			case oo.Table():
				_, err := fmt.Fprintf(out, "beatmap-dl %s (commit %s, %s)\n", v.Version, v.Commit, v.Go)
				return err
			}
			return oo.Write(out, v)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
