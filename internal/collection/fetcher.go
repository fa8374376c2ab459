package collection

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/beatmap-browser/internal/model"
)

// Searcher runs a search against the mirror. *mirror.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]*model.BeatmapSet, error)
}

// Snapshot is the observable state of a Fetcher.
//
// Exactly one of Items and Err is meaningful once Loading is false. Items is
// owned by the Fetcher and must not be modified by readers.
type Snapshot struct {
	Query      string
	Generation uint64
	Loading    bool
	Items      []*model.BeatmapSet
	Err        error
}

// ResultMsg carries the outcome of one search back into the update loop.
type ResultMsg struct {
	Generation uint64
	Query      string
	Items      []*model.BeatmapSet
	Err        error
}

// Fetcher holds the primary result list for the current search query.
//
// It is not safe for concurrent use. All calls are expected from the
// bubbletea update loop; the network request itself runs in the returned
// tea.Cmd and reports back through ResultMsg.
//
// Example usage:
//
//	fetcher := collection.NewFetcher(client, logger)
//	cmd := fetcher.Search(ctx, "")
//
//	// later, in Update:
//	case collection.ResultMsg:
//	    if fetcher.Apply(msg) {
//	        snap := fetcher.Snapshot()
//	        ...
//	    }
type Fetcher struct {
	searcher Searcher
	logger   *slog.Logger
	snap     Snapshot
}

// NewFetcher creates a Fetcher whose initial snapshot reports Loading, since
// the first search is expected to start right away.
func NewFetcher(searcher Searcher, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		searcher: searcher,
		logger:   logger,
		snap:     Snapshot{Loading: true},
	}
}

// Search starts a new search for query and returns the command that performs
// it. An empty query requests the mirror's default listing.
//
// Any response still outstanding from an earlier Search becomes stale and
// will be dropped by Apply.
func (f *Fetcher) Search(ctx context.Context, query string) tea.Cmd {
	f.snap.Generation++
	f.snap.Query = query
	f.snap.Loading = true
	f.snap.Err = nil

	gen := f.snap.Generation
	searcher := f.searcher
	f.logger.Debug("search started", "query", query, "generation", gen)

	return func() tea.Msg {
		items, err := searcher.Search(ctx, query)
		return ResultMsg{Generation: gen, Query: query, Items: items, Err: err}
	}
}

// Retry repeats the last search.
func (f *Fetcher) Retry(ctx context.Context) tea.Cmd {
	return f.Search(ctx, f.snap.Query)
}

// Apply records msg if it answers the latest search and reports whether the
// snapshot changed.
func (f *Fetcher) Apply(msg ResultMsg) bool {
	if msg.Generation != f.snap.Generation {
		f.logger.Debug("stale search result dropped",
			"generation", msg.Generation, "latest", f.snap.Generation)
		return false
	}

	f.snap.Loading = false
	if msg.Err != nil {
		f.snap.Items = nil
		f.snap.Err = msg.Err
		f.logger.Warn("search failed", "query", msg.Query, "err", msg.Err)
		return true
	}

	f.snap.Items = msg.Items
	f.snap.Err = nil
	f.logger.Info("search finished", "query", msg.Query, "results", len(msg.Items))
	return true
}

// Snapshot returns the current state.
func (f *Fetcher) Snapshot() Snapshot {
	return f.snap
}

// Find returns the cached set with the given id.
func (f *Fetcher) Find(id int64) (*model.BeatmapSet, bool) {
	return Find(f.snap.Items, id)
}

// Find looks id up in items.
func Find(items []*model.BeatmapSet, id int64) (*model.BeatmapSet, bool) {
	for _, set := range items {
		if set != nil && set.ID == id {
			return set, true
		}
	}
	return nil, false
}
