package model

import (
	"path/filepath"
	"strconv"
	"strings"

	ioutils "github.com/handiism/beatmap-browser/internal/io"
)

// BeatmapSet represents one mirrored beatmap set with its metadata and
// difficulties.
//
// BeatmapSet contains everything the browser needs to list and inspect a set:
//   - Identity (ID) and display strings (Title, Artist, Creator)
//   - Counters (FavouriteCount, PlayCount) and the ranking Status
//   - Optional timestamps kept as the raw strings sent by the mirror
//   - Covers for image downloads and PreviewURL for the audio preview
//   - Beatmaps, the difficulties contained in the set (order is irrelevant)
//
// Timestamps are stored raw because the mirror is not consistent about their
// shape; the dates package turns them into display strings.
//
// Example:
//
//	set, err := client.Beatmapset(ctx, 1001)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s - %s (%s)\n", set.Artist, set.Title, set.Status.Label())
type BeatmapSet struct {
	// ID is the stable, unique beatmap set identifier.
	ID int64

	// Title is the romanised song title.
	Title string

	// TitleUnicode is the song title in its original script.
	// Empty when the mirror did not send one.
	TitleUnicode string

	// Artist is the romanised artist name.
	Artist string

	// ArtistUnicode is the artist name in its original script.
	ArtistUnicode string

	// Creator is the mapper's user name.
	Creator string

	// CreatorID is the mapper's user id, zero when unknown.
	CreatorID int64

	// FavouriteCount is the number of users that favourited the set.
	FavouriteCount int

	// PlayCount is the total play count of the set.
	PlayCount int

	// Status is the ranking status of the set.
	Status Status

	// RankedDate is the raw ranked timestamp; empty when the set is not ranked.
	RankedDate string

	// SubmittedDate is the raw submission timestamp.
	SubmittedDate string

	// LastUpdated is the raw last-update timestamp.
	LastUpdated string

	// HasVideo reports whether the set ships a background video.
	HasVideo bool

	// HasStoryboard reports whether the set ships a storyboard.
	HasStoryboard bool

	// NSFW marks explicit content.
	NSFW bool

	// DownloadDisabled is set when the mirror cannot serve the archive.
	DownloadDisabled bool

	// Covers is the image set of the beatmap set.
	Covers Covers

	// PreviewURL is the absolute URL of the audio preview, empty if unknown.
	PreviewURL string

	// Source is the media the song comes from (anime, game, ...).
	Source string

	// Tags is the space separated tag string as sent by the mirror.
	Tags string

	// GenreID and LanguageID index the fixed genre and language tables.
	GenreID    int
	LanguageID int

	// BPM is the set-level tempo.
	BPM float64

	// Rating is the user rating. HasRating is false when the mirror sent none.
	Rating    float64
	HasRating bool

	// Beatmaps contains the difficulties of this set.
	Beatmaps []Beatmap
}

// Covers holds the image URLs of a beatmap set.
type Covers struct {
	Cover       string
	Cover2x     string
	Card        string
	Card2x      string
	List        string
	List2x      string
	SlimCover   string
	SlimCover2x string
}

// Best returns the highest resolution cover available, or "" when the set
// has no cover at all.
func (c Covers) Best() string {
	if c.Cover2x != "" {
		return c.Cover2x
	}
	return c.Cover
}

// HasCover returns true if the set has a cover image available for download.
func (s *BeatmapSet) HasCover() bool {
	return s.Covers.Best() != ""
}

// HasPreview returns true if the set has an audio preview available.
func (s *BeatmapSet) HasPreview() bool {
	return s.PreviewURL != ""
}

// DisplayTitle prefers the unicode title, like the web overlay does.
func (s *BeatmapSet) DisplayTitle() string {
	if s.TitleUnicode != "" {
		return s.TitleUnicode
	}
	return s.Title
}

// DisplayArtist prefers the unicode artist name.
func (s *BeatmapSet) DisplayArtist() string {
	if s.ArtistUnicode != "" {
		return s.ArtistUnicode
	}
	return s.Artist
}

// TagList splits Tags on whitespace, dropping empty entries.
func (s *BeatmapSet) TagList() []string {
	return strings.Fields(s.Tags)
}

// Genre returns the genre name from the fixed genre table.
func (s *BeatmapSet) Genre() string {
	return GenreName(s.GenreID)
}

// Language returns the language name from the fixed language table.
func (s *BeatmapSet) Language() string {
	return LanguageName(s.LanguageID)
}

// PathConfig holds path formatting settings for downloaded files.
//
// All name formats support placeholders that are replaced with set values:
//   - {id} - Beatmap set id
//   - {artist} - Artist name
//   - {title} - Song title
//   - {creator} - Mapper name
//   - {status} - Lower-case ranking status
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    DownloadsPath:         "/home/user/osu/Songs",
//	    ArchiveFileNameFormat: "{id} {artist} - {title}",
//	}
type PathConfig struct {
	// DownloadsPath is the base directory for all downloads.
	DownloadsPath string

	// FolderFormat is an optional per-set subfolder template.
	// Empty means every file goes straight into DownloadsPath.
	FolderFormat string

	// ArchiveFileNameFormat is the archive filename template (without extension).
	ArchiveFileNameFormat string

	// CoverArtFileNameFormat is the cover filename template (without extension).
	CoverArtFileNameFormat string

	// PreviewFileNameFormat is the audio preview filename template (without extension).
	PreviewFileNameFormat string

	// PlaylistFileNameFormat is the preview playlist filename (without extension).
	PlaylistFileNameFormat string

	// PlaylistFormat determines the playlist file type and extension.
	PlaylistFormat PlaylistFormat
}

// Paths are the computed local paths of one beatmap set.
type Paths struct {
	Folder  string
	Archive string
	Cover   string
	Preview string
}

// PathsFor computes where the files of a set are saved.
//
// Invalid filename characters are replaced with underscores. Paths are
// truncated if they exceed Windows path length limits (248 for folders, 260
// for files). Cover and Preview are empty when the set has none.
func (s *BeatmapSet) PathsFor(cfg *PathConfig) Paths {
	folder := cfg.DownloadsPath
	if cfg.FolderFormat != "" {
		folder = filepath.Join(folder, s.expand(cfg.FolderFormat))
	}

	// Limit path length for cross-platform compatibility (Windows MAX_PATH)
	if len(folder) >= 248 {
		folder = folder[:247]
	}

	p := Paths{
		Folder:  folder,
		Archive: limitPath(folder, s.expand(cfg.ArchiveFileNameFormat), ".osz"),
	}
	if s.HasCover() {
		p.Cover = limitPath(folder, s.expand(cfg.CoverArtFileNameFormat), ".jpg")
	}
	if s.HasPreview() {
		p.Preview = limitPath(folder, s.expand(cfg.PreviewFileNameFormat), ".mp3")
	}
	return p
}

// PlaylistPath computes the preview playlist path for a batch download.
func (cfg *PathConfig) PlaylistPath() string {
	name := ioutils.SanitizeFileName(cfg.PlaylistFileNameFormat)
	if name == "" {
		name = "previews"
	}
	return filepath.Join(cfg.DownloadsPath, name+cfg.PlaylistFormat.Extension())
}

// expand replaces the placeholders of a name template and sanitizes the result.
func (s *BeatmapSet) expand(format string) string {
	name := format
	name = strings.ReplaceAll(name, "{id}", strconv.FormatInt(s.ID, 10))
	name = strings.ReplaceAll(name, "{artist}", s.Artist)
	name = strings.ReplaceAll(name, "{title}", s.Title)
	name = strings.ReplaceAll(name, "{creator}", s.Creator)
	name = strings.ReplaceAll(name, "{status}", string(s.Status))
	return ioutils.SanitizeFileName(name)
}

// limitPath joins folder and file name, shortening the name for Windows
// compatibility when the full path reaches MAX_PATH.
func limitPath(folder, fileName, ext string) string {
	filePath := filepath.Join(folder, fileName+ext)
	if len(filePath) >= 260 {
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(folder, fileName[:maxLen]+ext)
		}
	}
	return filePath
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a config name ("m3u", "pls", "wpl", "zpl") to a
// PlaylistFormat. Unknown names fall back to M3U.
func ParsePlaylistFormat(name string) PlaylistFormat {
	switch strings.ToLower(name) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}
