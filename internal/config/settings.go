package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/handiism/beatmap-browser/internal/model"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIBase       = "BEATMAP_API_BASE"
	EnvDownloadsPath = "BEATMAP_DOWNLOADS_PATH"
	EnvLogLevel      = "BEATMAP_LOG_LEVEL"
)

// Settings holds all configuration options.
type Settings struct {
	// Mirror settings
	APIBase        string  `json:"api_base" yaml:"api_base"`
	RequestTimeout float64 `json:"request_timeout" yaml:"request_timeout"` // seconds
	UserAgent      string  `json:"user_agent" yaml:"user_agent"`

	// Download settings
	DownloadsPath          string  `json:"downloads_path" yaml:"downloads_path"`
	MaxConcurrentDownloads int     `json:"max_concurrent_downloads" yaml:"max_concurrent_downloads"`
	DownloadMaxRetries     int     `json:"download_max_retries" yaml:"download_max_retries"`
	DownloadRetryCooldown  float64 `json:"download_retry_cooldown" yaml:"download_retry_cooldown"`
	DownloadRetryExponent  float64 `json:"download_retry_exponent" yaml:"download_retry_exponent"`
	NoVideo                bool    `json:"no_video" yaml:"no_video"`

	// File naming
	FolderFormat           string `json:"folder_format" yaml:"folder_format"`
	ArchiveFileNameFormat  string `json:"archive_file_name_format" yaml:"archive_file_name_format"`
	CoverArtFileNameFormat string `json:"cover_art_file_name_format" yaml:"cover_art_file_name_format"`
	PreviewFileNameFormat  string `json:"preview_file_name_format" yaml:"preview_file_name_format"`
	PlaylistFileNameFormat string `json:"playlist_file_name_format" yaml:"playlist_file_name_format"`

	// Cover art settings
	SaveCoverArt         bool `json:"save_cover_art" yaml:"save_cover_art"`
	CoverArtResize       bool `json:"cover_art_resize" yaml:"cover_art_resize"`
	CoverArtMaxSize      int  `json:"cover_art_max_size" yaml:"cover_art_max_size"`
	ConvertCoverArtToJPG bool `json:"convert_cover_art_to_jpg" yaml:"convert_cover_art_to_jpg"`

	// Preview settings
	SavePreview    bool `json:"save_preview" yaml:"save_preview"`
	TagPreview     bool `json:"tag_preview" yaml:"tag_preview"`
	CoverInPreview bool `json:"cover_in_preview" yaml:"cover_in_preview"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist" yaml:"create_playlist"`
	PlaylistFormat string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" yaml:"m3u_extended"`

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"` // debug, info, warn, error
	LogFile  string `json:"log_file" yaml:"log_file"`

	// Proxy settings
	ProxyType    string `json:"proxy_type" yaml:"proxy_type"` // none, system, manual
	ProxyAddress string `json:"proxy_address" yaml:"proxy_address"`
	ProxyPort    int    `json:"proxy_port" yaml:"proxy_port"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		APIBase:        "https://catboy.best/api",
		RequestTimeout: 60,
		UserAgent:      "beatmap-browser",

		DownloadsPath:          filepath.Join(homeDir, "osu!", "Downloads"),
		MaxConcurrentDownloads: 3,
		DownloadMaxRetries:     5,
		DownloadRetryCooldown:  0.2,
		DownloadRetryExponent:  4.0,
		NoVideo:                false,

		FolderFormat:           "",
		ArchiveFileNameFormat:  "{id} {artist} - {title}",
		CoverArtFileNameFormat: "{id} {artist} - {title}",
		PreviewFileNameFormat:  "{id} {artist} - {title}",
		PlaylistFileNameFormat: "previews",

		SaveCoverArt:         false,
		CoverArtResize:       true,
		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,

		SavePreview:    false,
		TagPreview:     true,
		CoverInPreview: true,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		LogLevel: "info",

		ProxyType: "system",
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "beatmap-browser", "config.json")
}

// Load reads settings from a JSON or YAML file, chosen by extension.
//
// A missing file yields the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from BEATMAP_* environment variables.
func (s *Settings) ApplyEnv() {
	if v := os.Getenv(EnvAPIBase); v != "" {
		s.APIBase = v
	}
	if v := os.Getenv(EnvDownloadsPath); v != "" {
		s.DownloadsPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
}

// Timeout returns RequestTimeout as a duration, or 0 when unset.
func (s *Settings) Timeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return 0
	}
	return time.Duration(s.RequestTimeout * float64(time.Second))
}

// Concurrency returns the download parallelism, at least 1.
func (s *Settings) Concurrency() int {
	return max(1, s.MaxConcurrentDownloads)
}

// Proxy returns the proxy function for the HTTP transport.
//
// "none" disables proxies, "manual" uses ProxyAddress and ProxyPort, and
// anything else follows the HTTP_PROXY family of environment variables.
func (s *Settings) Proxy() (func(*http.Request) (*url.URL, error), error) {
	switch strings.ToLower(s.ProxyType) {
	case "none":
		return nil, nil
	case "manual":
		addr := s.ProxyAddress
		if !strings.Contains(addr, "://") {
			addr = "http://" + addr
		}
		u, err := url.Parse(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy address %q: %w", s.ProxyAddress, err)
		}
		if s.ProxyPort > 0 {
			u.Host = u.Hostname() + ":" + strconv.Itoa(s.ProxyPort)
		}
		return http.ProxyURL(u), nil
	default:
		return http.ProxyFromEnvironment, nil
	}
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		DownloadsPath:          s.DownloadsPath,
		FolderFormat:           s.FolderFormat,
		ArchiveFileNameFormat:  s.ArchiveFileNameFormat,
		CoverArtFileNameFormat: s.CoverArtFileNameFormat,
		PreviewFileNameFormat:  s.PreviewFileNameFormat,
		PlaylistFileNameFormat: s.PlaylistFileNameFormat,
		PlaylistFormat:         model.ParsePlaylistFormat(s.PlaylistFormat),
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
