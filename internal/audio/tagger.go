package audio

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bogem/id3v2"

	"github.com/handiism/beatmap-browser/internal/dates"
	"github.com/handiism/beatmap-browser/internal/mirror"
	"github.com/handiism/beatmap-browser/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value (sets to empty string).
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the beatmap set.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field of a preview.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags: true,
//	    Title:      TagModify,      // song title, unicode when available
//	    Artist:     TagModify,      // song artist
//	    Album:      TagModify,      // the set's source, e.g. a game or anime
//	    Comments:   TagModify,      // mapper and beatmap page link
//	    Genre:      TagDoNotModify, // keep whatever the file had
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// Album controls the TALB (Album title) frame, filled from the source.
	Album TagEditAction

	// Year controls the TYER (Year) frame.
	Year TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// BPM controls the TBPM (Beats per minute) frame.
	BPM TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration, which updates
// every field from the beatmap set.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Title:       TagModify,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		Year:        TagModify,
		Genre:       TagModify,
		BPM:         TagModify,
		Comments:    TagModify,
	}
}

// Tagger writes ID3 tags to audio preview files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//
//	// After downloading the preview
//	err := tagger.SaveTags(paths.Preview, set, coverBytes)
//	if err != nil {
//	    log.Printf("Failed to tag %s: %v", paths.Preview, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags describing set to the MP3 file at path.
//
// artwork is embedded as the front cover when non-nil; it is expected to be
// JPEG data.
func (t *Tagger) SaveTags(path string, set *model.BeatmapSet, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("tag preview: %w", err)
		}
		return err
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, set)
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, set *model.BeatmapSet) {
	// Title (TIT2)
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(set.DisplayTitle())
	}

	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(set.DisplayArtist())
	}

	// Album Artist (TPE2)
	switch t.config.AlbumArtist {
	case TagEmpty:
		tag.DeleteFrames("TPE2")
	case TagModify:
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, set.DisplayArtist())
	}

	// Album (TALB)
	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		if set.Source != "" {
			tag.SetAlbum(set.Source)
		}
	}

	// Year (TYER) from the ranked date, else the submission date
	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		if year := releaseYear(set); year != "" {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, year)
		}
	}

	// Genre (TCON)
	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		if set.GenreID > 1 {
			tag.SetGenre(set.Genre())
		}
	}

	// BPM (TBPM)
	switch t.config.BPM {
	case TagEmpty:
		tag.DeleteFrames("TBPM")
	case TagModify:
		if set.BPM > 0 {
			tag.AddTextFrame("TBPM", id3v2.EncodingUTF8, strconv.Itoa(int(set.BPM+0.5)))
		}
	}

	// Comments (COMM)
	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		tag.DeleteFrames(tag.CommonID("Comments"))
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        fmt.Sprintf("Mapped by %s - %s", set.Creator, mirror.WebURL(set.ID)),
		})
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	// Remove any existing cover pictures
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}

func releaseYear(set *model.BeatmapSet) string {
	for _, raw := range []string{set.RankedDate, set.SubmittedDate} {
		if d := dates.ShortDateIn(raw, time.UTC); d != dates.Unknown {
			return d[:4]
		}
	}
	return ""
}
