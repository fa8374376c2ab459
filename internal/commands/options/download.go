package options

import (
	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/config"
)

// DownloadOptions override the download part of the settings.
type DownloadOptions struct {
	Output   string
	Parallel int
	NoVideo  bool
	Cover    bool
	Preview  bool
	Playlist bool
	Format   string
	Verbose  bool
	DryRun   bool
}

func AddDownloadArgs(cmd *cobra.Command, o *DownloadOptions) {
	cmd.Flags().StringVarP(&o.Output, "output-dir", "d", "",
		"Directory to save archives to (overrides config).")
	cmd.Flags().IntVarP(&o.Parallel, "parallel", "p", 0,
		"Number of sets downloaded at once (overrides config).")
	cmd.Flags().BoolVar(&o.NoVideo, "no-video", false,
		"Download archives without the background video.")
	cmd.Flags().BoolVar(&o.Cover, "cover", false,
		"Also save the cover art.")
	cmd.Flags().BoolVar(&o.Preview, "preview", false,
		"Also save the tagged audio preview.")
	cmd.Flags().BoolVar(&o.Playlist, "playlist", false,
		"Write a playlist of the saved previews.")
	cmd.Flags().StringVar(&o.Format, "playlist-format", "",
		"Playlist format: m3u, pls, wpl or zpl.")
	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Show verbose progress.")
	cmd.Flags().BoolVar(&o.DryRun, "dry-run", false,
		"Resolve the sets without downloading.")
}

// Apply copies the flags that were set onto s.
func (o *DownloadOptions) Apply(s *config.Settings) {
	if o.Output != "" {
		s.DownloadsPath = o.Output
	}
	if o.Parallel > 0 {
		s.MaxConcurrentDownloads = o.Parallel
	}
	if o.NoVideo {
		s.NoVideo = true
	}
	if o.Cover {
		s.SaveCoverArt = true
	}
	if o.Preview {
		s.SavePreview = true
	}
	if o.Playlist {
		s.SavePreview = true
		s.CreatePlaylist = true
	}
	if o.Format != "" {
		s.PlaylistFormat = o.Format
	}
}
