package download

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/handiism/beatmap-browser/internal/config"
	bhttp "github.com/handiism/beatmap-browser/internal/http"
	"github.com/handiism/beatmap-browser/internal/mirror"
	"github.com/handiism/beatmap-browser/internal/model"
)

type fakeMirror struct {
	base string
	sets map[int64]*model.BeatmapSet
}

func (f *fakeMirror) Beatmapset(_ context.Context, id int64) (*model.BeatmapSet, error) {
	if set, ok := f.sets[id]; ok {
		return set, nil
	}
	return nil, mirror.ErrNotFound
}

func (f *fakeMirror) DownloadURL(id int64, noVideo bool) string {
	u := f.base + "/d/" + strconv.FormatInt(id, 10)
	if noVideo {
		u += "?nv=1"
	}
	return u
}

type server struct {
	*httptest.Server
	archiveHits map[string]*atomic.Int32
	mu          sync.Mutex
	failFirst   map[string]bool
	queries     []string
}

func newServer(t *testing.T) *server {
	t.Helper()

	var cover bytes.Buffer
	require.NoError(t, png.Encode(&cover, image.NewRGBA(image.Rect(0, 0, 8, 4))))
	preview := append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 256)...)

	s := &server{archiveHits: map[string]*atomic.Int32{}, failFirst: map[string]bool{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/d/"):
			id := strings.TrimPrefix(r.URL.Path, "/d/")
			s.mu.Lock()
			s.queries = append(s.queries, r.URL.RawQuery)
			hits, ok := s.archiveHits[id]
			if !ok {
				hits = &atomic.Int32{}
				s.archiveHits[id] = hits
			}
			failFirst := s.failFirst[id]
			s.mu.Unlock()

			n := hits.Add(1)
			switch {
			case id == "404":
				http.NotFound(w, r)
			case failFirst && n == 1:
				http.Error(w, "busy", http.StatusServiceUnavailable)
			default:
				w.Write([]byte("PK-archive-" + id))
			}
		case strings.HasPrefix(r.URL.Path, "/covers/"):
			w.Write(cover.Bytes())
		case strings.HasPrefix(r.URL.Path, "/preview/"):
			w.Write(preview)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *server) hits(id string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.archiveHits[id]; ok {
		return h.Load()
	}
	return 0
}

func testSettings(dir string) *config.Settings {
	s := config.DefaultSettings()
	s.DownloadsPath = dir
	s.DownloadMaxRetries = 3
	s.DownloadRetryCooldown = 0
	s.MaxConcurrentDownloads = 2
	return s
}

func testSet(srv *server, id int64) *model.BeatmapSet {
	sid := strconv.FormatInt(id, 10)
	return &model.BeatmapSet{
		ID:         id,
		Artist:     "Artist",
		Title:      "Song " + sid,
		Creator:    "mapper",
		Covers:     model.Covers{Cover: srv.URL + "/covers/" + sid + ".png"},
		PreviewURL: srv.URL + "/preview/" + sid + ".mp3",
	}
}

type recorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *recorder) record(e ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(level ProgressLevel) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func TestManager_DownloadArchives(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	settings := testSettings(dir)
	settings.NoVideo = true

	rec := &recorder{}
	m := NewManager(settings, bhttp.NewClient(), &fakeMirror{base: srv.URL}, rec.record)

	require.NoError(t, m.Download(context.Background(), testSet(srv, 1), testSet(srv, 2)))

	for _, id := range []string{"1", "2"} {
		data, err := os.ReadFile(filepath.Join(dir, id+" Artist - Song "+id+".osz"))
		require.NoError(t, err)
		require.Equal(t, "PK-archive-"+id, string(data))
	}

	received, done, total := m.GetProgress()
	require.Equal(t, int32(2), done)
	require.Equal(t, int32(2), total)
	require.Equal(t, int64(len("PK-archive-1")*2), received)
	require.Equal(t, 2, rec.count(LevelSuccess))
	require.Equal(t, []string{"nv=1", "nv=1"}, srv.queries)
	require.Len(t, m.GetSetNames(), 2)
}

func TestManager_RetriesServerErrors(t *testing.T) {
	srv := newServer(t)
	srv.failFirst["7"] = true
	dir := t.TempDir()

	rec := &recorder{}
	m := NewManager(testSettings(dir), bhttp.NewClient(), &fakeMirror{base: srv.URL}, rec.record)

	require.NoError(t, m.Download(context.Background(), testSet(srv, 7)))
	require.Equal(t, int32(2), srv.hits("7"))
	require.Equal(t, 1, rec.count(LevelWarning))

	_, err := os.Stat(filepath.Join(dir, "7 Artist - Song 7.osz"))
	require.NoError(t, err)
}

func TestManager_ClientErrorsFailWithoutRetry(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()

	rec := &recorder{}
	m := NewManager(testSettings(dir), bhttp.NewClient(), &fakeMirror{base: srv.URL}, rec.record)

	err := m.Download(context.Background(), testSet(srv, 404), testSet(srv, 3))
	require.ErrorIs(t, err, ErrIncomplete)
	require.Equal(t, int32(1), srv.hits("404"))
	require.Equal(t, 1, rec.count(LevelError))
	require.Equal(t, 1, rec.count(LevelSuccess))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "failed archives leave no partial file")
}

func TestManager_SkipsDisabledAndExisting(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()

	existing := filepath.Join(dir, "5 Artist - Song 5.osz")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	disabled := testSet(srv, 6)
	disabled.DownloadDisabled = true

	rec := &recorder{}
	m := NewManager(testSettings(dir), bhttp.NewClient(), &fakeMirror{base: srv.URL}, rec.record)

	require.NoError(t, m.Download(context.Background(), testSet(srv, 5), disabled))
	require.Zero(t, srv.hits("5"))
	require.Zero(t, srv.hits("6"))
	require.Equal(t, 1, rec.count(LevelWarning))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "old", string(data))
}

func TestManager_CoverPreviewAndPlaylist(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	settings := testSettings(dir)
	settings.SaveCoverArt = true
	settings.SavePreview = true
	settings.CreatePlaylist = true
	settings.PlaylistFormat = "pls"

	rec := &recorder{}
	m := NewManager(settings, bhttp.NewClient(), &fakeMirror{base: srv.URL}, rec.record)

	require.NoError(t, m.Download(context.Background(), testSet(srv, 1), testSet(srv, 2)))

	cover, err := os.ReadFile(filepath.Join(dir, "1 Artist - Song 1.jpg"))
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(cover))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)

	preview, err := os.ReadFile(filepath.Join(dir, "2 Artist - Song 2.mp3"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(preview, []byte("ID3")), "preview should carry an ID3 tag")

	playlist, err := os.ReadFile(filepath.Join(dir, "previews.pls"))
	require.NoError(t, err)
	require.Contains(t, string(playlist), "File1=1 Artist - Song 1.mp3")
	require.Contains(t, string(playlist), "File2=2 Artist - Song 2.mp3")
	require.Contains(t, string(playlist), "NumberOfEntries=2")

	_, done, total := m.GetProgress()
	require.Equal(t, int32(6), total)
	require.Equal(t, total, done)
}

func TestManager_Initialize(t *testing.T) {
	srv := newServer(t)
	fm := &fakeMirror{base: srv.URL, sets: map[int64]*model.BeatmapSet{1: testSet(srv, 1)}}

	rec := &recorder{}
	m := NewManager(testSettings(t.TempDir()), bhttp.NewClient(), fm, rec.record)

	require.NoError(t, m.Initialize(context.Background(), []int64{1, 2}))
	require.Len(t, m.GetSetNames(), 1)
	require.Equal(t, 1, rec.count(LevelError))

	empty := NewManager(testSettings(t.TempDir()), nil, fm, nil)
	require.Error(t, empty.Initialize(context.Background(), []int64{99}))
}

func TestManager_Cancelled(t *testing.T) {
	srv := newServer(t)
	m := NewManager(testSettings(t.TempDir()), bhttp.NewClient(), &fakeMirror{base: srv.URL}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Download(ctx, testSet(srv, 1))
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestProgressLevelString(t *testing.T) {
	require.Equal(t, "warning", LevelWarning.String())
	require.Equal(t, "info", ProgressLevel(42).String())
}
