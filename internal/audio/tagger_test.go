package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/handiism/beatmap-browser/internal/model"
)

// fakeMP3 is a lone MPEG frame header followed by padding, enough for id3v2
// to treat the file as untagged audio.
var fakeMP3 = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 412)...)

func TestTagger_SaveTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.mp3")
	if err := os.WriteFile(path, fakeMP3, 0644); err != nil {
		t.Fatal(err)
	}

	set := &model.BeatmapSet{
		ID:            39804,
		Title:         "FREEDOM DiVE",
		Artist:        "xi",
		ArtistUnicode: "xi",
		Creator:       "Nakagawa-Kanon",
		Source:        "BMS",
		GenreID:       2,
		BPM:           222.22,
		RankedDate:    "2012-05-31T07:28:40Z",
	}

	if err := NewTagger(nil).SaveTags(path, set, []byte{0xFF, 0xD8, 0xFF}); err != nil {
		t.Fatalf("SaveTags failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	checks := map[string]string{
		"title":  tag.Title(),
		"artist": tag.Artist(),
		"album":  tag.Album(),
		"genre":  tag.Genre(),
	}
	want := map[string]string{
		"title":  "FREEDOM DiVE",
		"artist": "xi",
		"album":  "BMS",
		"genre":  "Video Game",
	}
	for k, v := range want {
		if checks[k] != v {
			t.Errorf("%s = %q, want %q", k, checks[k], v)
		}
	}

	if got := tag.GetTextFrame("TYER").Text; got != "2012" {
		t.Errorf("TYER = %q, want 2012", got)
	}
	if got := tag.GetTextFrame("TBPM").Text; got != "222" {
		t.Errorf("TBPM = %q, want 222", got)
	}

	comments := tag.GetFrames(tag.CommonID("Comments"))
	if len(comments) != 1 {
		t.Fatalf("expected one comment frame, got %d", len(comments))
	}
	if cf, ok := comments[0].(id3v2.CommentFrame); !ok || !strings.Contains(cf.Text, "Nakagawa-Kanon") {
		t.Errorf("comment should mention the mapper, got %+v", comments[0])
	}

	if pics := tag.GetFrames(tag.CommonID("Attached picture")); len(pics) != 1 {
		t.Errorf("expected one attached picture, got %d", len(pics))
	}
}

func TestTagger_MissingFile(t *testing.T) {
	err := NewTagger(nil).SaveTags(filepath.Join(t.TempDir(), "missing.mp3"), &model.BeatmapSet{}, nil)
	if err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		set  model.BeatmapSet
		want string
	}{
		{model.BeatmapSet{RankedDate: "2014-03-01T00:00:00Z", SubmittedDate: "2013-01-01T00:00:00Z"}, "2014"},
		{model.BeatmapSet{SubmittedDate: "2013-01-01T00:00:00Z"}, "2013"},
		{model.BeatmapSet{RankedDate: "garbage"}, ""},
		{model.BeatmapSet{}, ""},
	}

	for _, tt := range tests {
		if got := releaseYear(&tt.set); got != tt.want {
			t.Errorf("releaseYear(%+v) = %q, want %q", tt.set, got, tt.want)
		}
	}
}
