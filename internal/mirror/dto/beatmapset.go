package dto

import (
	"strings"

	"github.com/handiism/beatmap-browser/internal/model"
)

// SearchResponse is the body of GET /v2/search.
type SearchResponse struct {
	Beatmapsets []*Beatmapset `json:"beatmapsets"`
	Total       int64         `json:"total"`
	Error       *string       `json:"error"`
}

// Covers is the image set of a beatmap set.
type Covers struct {
	Cover       string `json:"cover"`
	Cover2x     string `json:"cover@2x"`
	Card        string `json:"card"`
	Card2x      string `json:"card@2x"`
	List        string `json:"list"`
	List2x      string `json:"list@2x"`
	SlimCover   string `json:"slimcover"`
	SlimCover2x string `json:"slimcover@2x"`
}

// Availability describes whether the archive can be downloaded.
type Availability struct {
	DownloadDisabled bool    `json:"download_disabled"`
	MoreInformation  *string `json:"more_information"`
}

// Beatmapset represents one beatmap set as served by the mirror.
// Pointer fields are nullable on the wire.
type Beatmapset struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	TitleUnicode   *string      `json:"title_unicode"`
	Artist         string       `json:"artist"`
	ArtistUnicode  *string      `json:"artist_unicode"`
	Creator        string       `json:"creator"`
	UserID         *int64       `json:"user_id"`
	Status         string       `json:"status"`
	Covers         *Covers      `json:"covers"`
	FavouriteCount int          `json:"favourite_count"`
	PlayCount      int          `json:"play_count"`
	PreviewURL     string       `json:"preview_url"`
	Source         *string      `json:"source"`
	Tags           *string      `json:"tags"`
	GenreID        *int         `json:"genre_id"`
	LanguageID     *int         `json:"language_id"`
	Video          bool         `json:"video"`
	Storyboard     bool         `json:"storyboard"`
	NSFW           bool         `json:"nsfw"`
	BPM            float64      `json:"bpm"`
	Rating         *float64     `json:"rating"`
	RankedDate     Timestamp    `json:"ranked_date"`
	SubmittedDate  Timestamp    `json:"submitted_date"`
	LastUpdated    Timestamp    `json:"last_updated"`
	Availability   Availability `json:"availability"`
	Beatmaps       []Beatmap    `json:"beatmaps"`
}

// Empty reports whether the payload carries no beatmap set at all, which is
// how the mirror answers `{}` for unknown ids.
func (bs *Beatmapset) Empty() bool {
	return bs == nil || bs.ID == 0
}

// ToBeatmapSet converts the wire representation to a model.BeatmapSet.
func (bs *Beatmapset) ToBeatmapSet() *model.BeatmapSet {
	set := &model.BeatmapSet{
		ID:               bs.ID,
		Title:            bs.Title,
		TitleUnicode:     deref(bs.TitleUnicode),
		Artist:           bs.Artist,
		ArtistUnicode:    deref(bs.ArtistUnicode),
		Creator:          bs.Creator,
		FavouriteCount:   max(0, bs.FavouriteCount),
		PlayCount:        max(0, bs.PlayCount),
		Status:           model.ParseStatus(bs.Status),
		RankedDate:       string(bs.RankedDate),
		SubmittedDate:    string(bs.SubmittedDate),
		LastUpdated:      string(bs.LastUpdated),
		HasVideo:         bs.Video,
		HasStoryboard:    bs.Storyboard,
		NSFW:             bs.NSFW,
		DownloadDisabled: bs.Availability.DownloadDisabled,
		PreviewURL:       absoluteURL(bs.PreviewURL),
		Source:           strings.TrimSpace(deref(bs.Source)),
		Tags:             deref(bs.Tags),
		BPM:              bs.BPM,
	}

	if bs.UserID != nil {
		set.CreatorID = *bs.UserID
	}
	if bs.GenreID != nil {
		set.GenreID = *bs.GenreID
	}
	if bs.LanguageID != nil {
		set.LanguageID = *bs.LanguageID
	}
	if bs.Rating != nil {
		set.Rating = *bs.Rating
		set.HasRating = true
	}
	if bs.Covers != nil {
		set.Covers = model.Covers{
			Cover:       absoluteURL(bs.Covers.Cover),
			Cover2x:     absoluteURL(bs.Covers.Cover2x),
			Card:        absoluteURL(bs.Covers.Card),
			Card2x:      absoluteURL(bs.Covers.Card2x),
			List:        absoluteURL(bs.Covers.List),
			List2x:      absoluteURL(bs.Covers.List2x),
			SlimCover:   absoluteURL(bs.Covers.SlimCover),
			SlimCover2x: absoluteURL(bs.Covers.SlimCover2x),
		}
	}

	set.Beatmaps = make([]model.Beatmap, 0, len(bs.Beatmaps))
	for i := range bs.Beatmaps {
		set.Beatmaps = append(set.Beatmaps, bs.Beatmaps[i].ToBeatmap())
	}

	return set
}

// absoluteURL fixes scheme-relative URLs such as "//b.ppy.sh/preview/1.mp3".
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
