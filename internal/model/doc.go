// Package model defines the core data structures used throughout
// the beatmap-browser application.
//
// # BeatmapSet
//
// BeatmapSet is one item of the mirrored collection, with its metadata,
// covers and difficulties:
//
//	set := results[0]
//	fmt.Println(set.DisplayTitle(), set.Status.Label())
//	fmt.Println(set.Genre(), set.Language(), set.TagList())
//
// # Beatmap
//
// Beatmap is a single difficulty of a set. Its Mode is already normalised,
// see difficulty.ModeTag.
//
// # Fixed Tables
//
// Status badges, genre names and language names are immutable lookup tables.
// Values outside a table resolve to "UNKNOWN" / "Unknown".
//
// # Path Configuration
//
// PathConfig controls where downloads of a set are written:
//
//	cfg := &model.PathConfig{
//	    DownloadsPath:          "/home/user/osu/Songs",
//	    ArchiveFileNameFormat:  "{id} {artist} - {title}",
//	    CoverArtFileNameFormat: "{id} cover",
//	    PreviewFileNameFormat:  "{id} {artist} - {title}",
//	    PlaylistFormat:         model.PlaylistFormatM3U,
//	}
//	paths := set.PathsFor(cfg)
//
// Available placeholders: {id}, {artist}, {title}, {creator}, {status}
package model
