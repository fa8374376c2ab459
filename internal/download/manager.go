package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/beatmap-browser/internal/audio"
	"github.com/handiism/beatmap-browser/internal/config"
	"github.com/handiism/beatmap-browser/internal/http"
	ioutils "github.com/handiism/beatmap-browser/internal/io"
	"github.com/handiism/beatmap-browser/internal/model"
)

// ErrIncomplete is returned by StartDownloads when at least one beatmap set
// failed. The individual failures were reported as LevelError events.
var ErrIncomplete = errors.New("some beatmap sets failed to download")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	// SetID is the beatmap set the event is about, 0 for batch events.
	SetID int64
}

// Mirror resolves beatmap sets and archive URLs. *mirror.Client implements it.
type Mirror interface {
	Beatmapset(ctx context.Context, id int64) (*model.BeatmapSet, error)
	DownloadURL(id int64, noVideo bool) string
}

// Manager coordinates beatmap set downloads.
type Manager struct {
	settings     *config.Settings
	pathConfig   *model.PathConfig
	httpClient   *http.Client
	mirror       Mirror
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	sets     []*model.BeatmapSet
	previews []audio.Entry

	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32
	failedSets      int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new download Manager.
//
// onProgress may be called from several goroutines at once.
func NewManager(settings *config.Settings, httpClient *http.Client, mirror Mirror, onProgress func(ProgressEvent)) *Manager {
	if httpClient == nil {
		httpClient = http.NewClient()
	}
	return &Manager{
		settings:     settings,
		pathConfig:   settings.ToPathConfig(),
		httpClient:   httpClient,
		mirror:       mirror,
		tagger:       audio.NewTagger(audio.DefaultTagConfig()),
		playlist:     audio.NewPlaylistCreator(model.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize fetches the beatmap sets with the given ids from the mirror.
//
// Ids that cannot be resolved are reported as errors and skipped. An error
// is returned only when none of them could be resolved.
func (m *Manager) Initialize(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching beatmap set %d", id), Level: LevelVerbose, SetID: id})

		set, err := m.mirror.Beatmapset(ctx, id)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching beatmap set %d: %v", id, err), Level: LevelError, SetID: id})
			continue
		}

		m.Add(set)
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Found beatmap set: %s - %s (%d difficulties)", set.Artist, set.Title, len(set.Beatmaps)),
			Level:   LevelInfo,
			SetID:   id,
		})
	}

	if len(ids) > 0 && len(m.sets) == 0 {
		return errors.New("no beatmap set could be resolved")
	}
	return nil
}

// Add queues sets that are already known, such as the one open in the
// browser.
func (m *Manager) Add(sets ...*model.BeatmapSet) {
	for _, set := range sets {
		if set == nil {
			continue
		}
		m.sets = append(m.sets, set)
		m.totalFiles += m.plannedFiles(set)
	}
}

// Download queues sets and downloads them.
func (m *Manager) Download(ctx context.Context, sets ...*model.BeatmapSet) error {
	m.Add(sets...)
	return m.StartDownloads(ctx)
}

// StartDownloads downloads all queued sets, at most
// settings.MaxConcurrentDownloads at a time.
//
// A failed set does not stop the others. If any failed, ErrIncomplete is
// returned after the whole batch finished.
func (m *Manager) StartDownloads(ctx context.Context) error {
	m.previews = make([]audio.Entry, len(m.sets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.Concurrency())

	for i, set := range m.sets {
		g.Go(func() error {
			return m.downloadSet(ctx, i, set)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if m.settings.CreatePlaylist && m.settings.SavePreview {
		m.writePlaylist(ctx)
	}

	if failed := atomic.LoadInt32(&m.failedSets); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrIncomplete, failed, len(m.sets))
	}
	return nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received int64, filesReceived, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt32(&m.downloadedFiles), m.totalFiles
}

// GetSetNames returns the names of all queued sets.
func (m *Manager) GetSetNames() []string {
	names := make([]string, len(m.sets))
	for i, set := range m.sets {
		names[i] = fmt.Sprintf("%d %s - %s (%d difficulties)", set.ID, set.Artist, set.Title, len(set.Beatmaps))
	}
	return names
}

// plannedFiles counts the files a set will produce with the current settings.
func (m *Manager) plannedFiles(set *model.BeatmapSet) int32 {
	if set.DownloadDisabled {
		return 0
	}
	n := int32(1)
	if m.settings.SaveCoverArt && set.HasCover() {
		n++
	}
	if m.settings.SavePreview && set.HasPreview() {
		n++
	}
	return n
}

// downloadSet downloads one set. Failures are reported and counted; only a
// cancelled context is returned as an error.
func (m *Manager) downloadSet(ctx context.Context, index int, set *model.BeatmapSet) error {
	name := fmt.Sprintf("%s - %s", set.Artist, set.Title)

	if set.DownloadDisabled {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Download disabled for %s, skipping", name), Level: LevelWarning, SetID: set.ID})
		return nil
	}

	paths := set.PathsFor(m.pathConfig)
	if err := ioutils.EnsureDir(paths.Folder); err != nil {
		m.fail(set, fmt.Sprintf("Error creating directory: %v", err))
		return nil
	}

	if err := m.downloadArchive(ctx, set, paths.Archive); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.fail(set, fmt.Sprintf("Error downloading %s: %v", name, err))
		return nil
	}

	var artwork []byte
	wantCover := m.settings.SaveCoverArt || (m.settings.SavePreview && m.settings.CoverInPreview)
	if wantCover && set.HasCover() {
		var err error
		artwork, err = m.downloadCover(ctx, set, paths.Cover)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading cover for %s: %v", name, err), Level: LevelWarning, SetID: set.ID})
		}
	}

	if m.settings.SavePreview && set.HasPreview() {
		if err := m.downloadPreview(ctx, set, paths.Preview, artwork); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading preview for %s: %v", name, err), Level: LevelWarning, SetID: set.ID})
		} else {
			m.mu.Lock()
			m.previews[index] = audio.EntryFor(set, paths.Preview)
			m.mu.Unlock()
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully downloaded: %s", name), Level: LevelSuccess, SetID: set.ID})
	return nil
}

func (m *Manager) downloadArchive(ctx context.Context, set *model.BeatmapSet, path string) error {
	// Archives are immutable per id, so an existing non-empty file is kept
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(path)), Level: LevelVerbose, SetID: set.ID})
		atomic.AddInt32(&m.downloadedFiles, 1)
		return nil
	}

	url := m.mirror.DownloadURL(set.ID, m.settings.NoVideo)
	err := m.retry(ctx, set, filepath.Base(path), func() error {
		return m.fetchToFile(ctx, url, path)
	})
	if err != nil {
		return err
	}

	atomic.AddInt32(&m.downloadedFiles, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(path)), Level: LevelVerbose, SetID: set.ID})
	return nil
}

// downloadCover fetches the cover, saves it when requested, and returns the
// JPEG to embed in the preview tags.
func (m *Manager) downloadCover(ctx context.Context, set *model.BeatmapSet, path string) ([]byte, error) {
	var cover []byte
	err := m.retry(ctx, set, "cover", func() error {
		var err error
		cover, err = m.httpClient.DownloadBytes(ctx, set.Covers.Best())
		return err
	})
	if err != nil {
		return nil, err
	}

	if m.settings.SaveCoverArt {
		toSave, err := m.imageService.Prepare(ctx, cover, ioutils.CoverOptions{
			Resize:  m.settings.CoverArtResize,
			MaxSize: m.settings.CoverArtMaxSize,
			ToJPEG:  m.settings.ConvertCoverArtToJPG,
		})
		if err != nil {
			toSave = cover
		}
		if err := ioutils.WriteFile(ctx, path, toSave); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving cover: %v", err), Level: LevelWarning, SetID: set.ID})
		} else {
			atomic.AddInt32(&m.downloadedFiles, 1)
		}
	}

	if !m.settings.SavePreview || !m.settings.CoverInPreview {
		return nil, nil
	}
	// APIC frames are written as image/jpeg
	forTags, err := m.imageService.Prepare(ctx, cover, ioutils.CoverOptions{
		Resize:  true,
		MaxSize: m.settings.CoverArtMaxSize,
		ToJPEG:  true,
	})
	if err != nil {
		return nil, err
	}
	return forTags, nil
}

func (m *Manager) downloadPreview(ctx context.Context, set *model.BeatmapSet, path string, artwork []byte) error {
	var data []byte
	err := m.retry(ctx, set, "preview", func() error {
		var err error
		data, err = m.httpClient.DownloadBytes(ctx, set.PreviewURL)
		return err
	})
	if err != nil {
		return err
	}
	atomic.AddInt64(&m.receivedBytes, int64(len(data)))

	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return err
	}
	atomic.AddInt32(&m.downloadedFiles, 1)

	if m.settings.TagPreview || artwork != nil {
		if err := m.tagger.SaveTags(path, set, artwork); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(path), err), Level: LevelWarning, SetID: set.ID})
		}
	}
	return nil
}

// fetchToFile streams url into path through ioutils.WriteFileAtomic.
func (m *Manager) fetchToFile(ctx context.Context, url, path string) error {
	pr, pw := io.Pipe()

	go func() {
		var last int64
		err := m.httpClient.Download(ctx, url, pw, func(written, _ int64) {
			atomic.AddInt64(&m.receivedBytes, written-last)
			last = written
		})
		pw.CloseWithError(err)
	}()

	err := ioutils.WriteFileAtomic(ctx, path, pr)
	pr.CloseWithError(err)
	return err
}

func (m *Manager) writePlaylist(ctx context.Context) {
	var entries []audio.Entry
	for _, e := range m.previews {
		if e.Path != "" {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return
	}

	path := m.pathConfig.PlaylistPath()
	title := filepath.Base(path[:len(path)-len(filepath.Ext(path))])
	content := m.playlist.CreatePlaylist(title, entries)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(path)), Level: LevelSuccess})
}

// retry runs fn up to settings.DownloadMaxRetries times with exponential
// backoff. Client errors (4xx) are not retried.
func (m *Manager) retry(ctx context.Context, set *model.BeatmapSet, what string, fn func() error) error {
	attempts := max(1, m.settings.DownloadMaxRetries)

	var err error
	for tries := 0; tries < attempts; tries++ {
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var statusErr *http.StatusError
		if errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500 {
			return err
		}

		if tries+1 < attempts {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, attempts-1, what), Level: LevelWarning, SetID: set.ID})
			m.waitForRetry(ctx, tries)
		}
	}
	return err
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.DownloadRetryCooldown * math.Pow(m.settings.DownloadRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) fail(set *model.BeatmapSet, msg string) {
	atomic.AddInt32(&m.failedSets, 1)
	m.progress(ProgressEvent{Message: msg, Level: LevelError, SetID: set.ID})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
