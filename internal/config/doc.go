// Package config provides configuration management for beatmap-browser.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Environment overrides (BEATMAP_API_BASE, BEATMAP_DOWNLOADS_PATH,
//     BEATMAP_LOG_LEVEL)
//   - Conversion to model.PathConfig for the download manager
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Downloads to ~/osu!/Downloads
//	// Three concurrent downloads, five retries
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	settings.ApplyEnv()
//
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
package config
