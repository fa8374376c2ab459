// Package commands implements the beatmap-dl command line.
//
// The root command carries the flags every subcommand shares (config file,
// mirror base URL and logging). Subcommands load the settings in the order
// file, BEATMAP_* environment, flags, and build one mirror client from them:
//
//	beatmap-dl search [query...]      list sets as a table, JSON or YAML
//	beatmap-dl show <id|url>          one set with its difficulties
//	beatmap-dl download <id|url>...   fetch archives, covers and previews
//	beatmap-dl browse [id|url]        the interactive browser
//	beatmap-dl config show|init       inspect or create the config file
//	beatmap-dl version
package commands
