package options

import (
	"github.com/spf13/cobra"
)

// RootOptions are the flags every command shares.
type RootOptions struct {
	ConfigPath string
	APIBase    string
	LogLevel   string
	LogFile    string
}

func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "",
		"Path to a JSON or YAML config file. Defaults to the user config dir.")
	cmd.PersistentFlags().StringVar(&o.APIBase, "api", "",
		"Mirror API base URL (overrides config).")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
	cmd.PersistentFlags().StringVar(&o.LogFile, "log-file", "",
		"Write logs to this file.")
}
