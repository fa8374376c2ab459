package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/handiism/beatmap-browser/internal/commands/options"
	"github.com/handiism/beatmap-browser/internal/config"
	bhttp "github.com/handiism/beatmap-browser/internal/http"
	"github.com/handiism/beatmap-browser/internal/logging"
	"github.com/handiism/beatmap-browser/internal/mirror"
)

// env is what a command needs to talk to the mirror.
type env struct {
	settings *config.Settings
	logger   *slog.Logger
	http     *bhttp.Client
	mirror   *mirror.Client
	closer   io.Closer
}

// loadSettings reads the config file, then the environment, then the flags.
func loadSettings(ro *options.RootOptions) (*config.Settings, string, error) {
	path := ro.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	settings.ApplyEnv()

	if ro.APIBase != "" {
		settings.APIBase = ro.APIBase
	}
	if ro.LogLevel != "" {
		settings.LogLevel = ro.LogLevel
	}
	if ro.LogFile != "" {
		settings.LogFile = ro.LogFile
	}
	return settings, path, nil
}

func setup(ro *options.RootOptions) (*env, error) {
	settings, _, err := loadSettings(ro)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(settings.LogLevel, settings.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	proxy, err := settings.Proxy()
	if err != nil {
		closer.Close()
		return nil, err
	}

	hc := bhttp.NewClient(
		bhttp.WithTimeout(settings.Timeout()),
		bhttp.WithUserAgent(settings.UserAgent),
		bhttp.WithProxy(proxy),
	)

	logger.Debug("settings loaded", "api", settings.APIBase, "downloads", settings.DownloadsPath)

	return &env{
		settings: settings,
		logger:   logger,
		http:     hc,
		mirror:   mirror.NewClient(settings.APIBase, hc, logger),
		closer:   closer,
	}, nil
}

func (e *env) Close() error {
	return e.closer.Close()
}
