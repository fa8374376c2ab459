// Package audio handles the audio previews of beatmap sets: ID3 tagging and
// playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to a downloaded preview:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(paths.Preview, set, coverBytes)
//
// The tagger supports:
//   - Title and Artist (unicode variants preferred)
//   - Album, filled from the set's source
//   - Year, Genre and BPM
//   - A comment naming the mapper and linking the beatmap page
//   - Cover Art (embedded in MP3)
//
// # Playlist Generation
//
// Generate a playlist of all previews of a download batch:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("previews", entries)
//	os.WriteFile(pathConfig.PlaylistPath(), []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
