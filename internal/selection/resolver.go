package selection

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/beatmap-browser/internal/collection"
	"github.com/handiism/beatmap-browser/internal/mirror"
	"github.com/handiism/beatmap-browser/internal/model"
	"github.com/handiism/beatmap-browser/internal/route"
)

// SetFetcher fetches a single set by id. *mirror.Client implements it.
type SetFetcher interface {
	Beatmapset(ctx context.Context, id int64) (*model.BeatmapSet, error)
}

// LookupMsg carries the result of a secondary fetch back into the update
// loop. It is tagged with the id it was issued for.
type LookupMsg struct {
	ID   int64
	Item *model.BeatmapSet
	Err  error
}

// Resolver drives Reduce against a router and a set fetcher.
//
// Like collection.Fetcher it belongs to the update loop and is not safe for
// concurrent use.
type Resolver struct {
	router  *route.Router
	fetcher SetFetcher
	logger  *slog.Logger

	lookup *Lookup
	state  State
}

// NewResolver creates a resolver reading the selected id from router.
func NewResolver(router *route.Router, fetcher SetFetcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		router:  router,
		fetcher: fetcher,
		logger:  logger,
		state:   State{Phase: Closed},
	}
}

// State returns the selection computed by the last Sync or Close.
func (r *Resolver) State() State {
	return r.state
}

// Sync recomputes the selection from the router and snap and carries out the
// resulting effects. The returned command, if any, performs the secondary
// fetch and yields a LookupMsg.
func (r *Resolver) Sync(ctx context.Context, snap collection.Snapshot) tea.Cmd {
	var cmds []tea.Cmd

	// A redirect changes the router, so evaluate again until the selection
	// is stable. Two rounds are enough: after a redirect there is no id.
	for range 2 {
		in := r.input(snap)
		state, effects := Reduce(in)
		r.state = state

		navigated := false
		for _, eff := range effects {
			switch eff.Kind {
			case FetchByID:
				cmds = append(cmds, r.fetch(ctx, eff.ID))
			case Navigate:
				r.logger.Debug("selection redirected", "id", state.ID, "to", eff.Path)
				navigated = r.router.Navigate(eff.Path, eff.Replace) || navigated
			}
		}
		if !navigated {
			break
		}
	}

	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// ApplyLookup records the outcome of a secondary fetch. Results for an id
// that is no longer being looked up are ignored. It reports whether the
// result was recorded; call Sync afterwards to update the selection.
func (r *Resolver) ApplyLookup(msg LookupMsg) bool {
	if r.lookup == nil || r.lookup.ID != msg.ID || !r.lookup.Pending {
		r.logger.Debug("stale lookup dropped", "id", msg.ID)
		return false
	}

	r.lookup.Pending = false
	r.lookup.Item = msg.Item
	r.lookup.Err = msg.Err
	if msg.Item == nil && msg.Err == nil {
		r.lookup.Err = mirror.ErrNotFound
	}

	if r.lookup.Err != nil {
		level := slog.LevelDebug
		if !errors.Is(r.lookup.Err, mirror.ErrNotFound) {
			level = slog.LevelWarn
		}
		r.logger.Log(context.Background(), level, "lookup failed", "id", msg.ID, "err", r.lookup.Err)
	}
	return true
}

// Open selects the set with id by pushing its detail path.
func (r *Resolver) Open(id int64) {
	r.router.Navigate(route.BeatmapsetPath(id), false)
}

// Close clears the selection from any phase and navigates to the index.
func (r *Resolver) Close() {
	r.router.Navigate(route.IndexPath, false)
	r.lookup = nil
	r.state = State{Phase: Closed}
}

func (r *Resolver) input(snap collection.Snapshot) Input {
	id, ok := r.router.BeatmapsetID()

	// the lookup only lives as long as its id stays selected
	if r.lookup != nil && (!ok || r.lookup.ID != id) {
		r.lookup = nil
	}

	return Input{
		PathID:  id,
		HasPath: ok,
		Items:   snap.Items,
		Loading: snap.Loading,
		Lookup:  r.lookup,
	}
}

func (r *Resolver) fetch(ctx context.Context, id int64) tea.Cmd {
	r.lookup = &Lookup{ID: id, Pending: true}
	r.logger.Debug("lookup started", "id", id)

	fetcher := r.fetcher
	return func() tea.Msg {
		item, err := fetcher.Beatmapset(ctx, id)
		return LookupMsg{ID: id, Item: item, Err: err}
	}
}
