package selection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/handiism/beatmap-browser/internal/collection"
	bhttp "github.com/handiism/beatmap-browser/internal/http"
	"github.com/handiism/beatmap-browser/internal/mirror"
	"github.com/handiism/beatmap-browser/internal/model"
	"github.com/handiism/beatmap-browser/internal/route"
)

type fakeFetcher struct {
	calls []int64
	sets  map[int64]*model.BeatmapSet
	err   error
}

func (f *fakeFetcher) Beatmapset(_ context.Context, id int64) (*model.BeatmapSet, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	set, ok := f.sets[id]
	if !ok {
		return nil, mirror.ErrNotFound
	}
	return set, nil
}

func items(ids ...int64) []*model.BeatmapSet {
	out := make([]*model.BeatmapSet, len(ids))
	for i, id := range ids {
		out[i] = &model.BeatmapSet{ID: id}
	}
	return out
}

// run executes cmd and returns the resulting LookupMsg values.
func run(t *testing.T, cmd tea.Cmd) []LookupMsg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case LookupMsg:
		return []LookupMsg{msg}
	case tea.BatchMsg:
		var out []LookupMsg
		for _, c := range msg {
			out = append(out, run(t, c)...)
		}
		return out
	default:
		t.Fatalf("unexpected message %T", msg)
		return nil
	}
}

func TestReduce(t *testing.T) {
	list := items(1, 42)

	tests := []struct {
		name      string
		in        Input
		phase     Phase
		effects   []Effect
		wantLocal bool
	}{
		{
			name:  "no path id",
			in:    Input{Items: list},
			phase: Closed,
		},
		{
			name:      "id in list",
			in:        Input{PathID: 42, HasPath: true, Items: list},
			phase:     Open,
			wantLocal: true,
		},
		{
			name:      "id in list while loading",
			in:        Input{PathID: 42, HasPath: true, Items: list, Loading: true},
			phase:     Open,
			wantLocal: true,
		},
		{
			name:  "deferred while loading",
			in:    Input{PathID: 99, HasPath: true, Items: list, Loading: true},
			phase: Resolving,
		},
		{
			name:    "fetch once loaded",
			in:      Input{PathID: 99, HasPath: true, Items: list},
			phase:   Resolving,
			effects: []Effect{{Kind: FetchByID, ID: 99}},
		},
		{
			name:    "lookup for another id",
			in:      Input{PathID: 99, HasPath: true, Lookup: &Lookup{ID: 7, Pending: true}},
			phase:   Resolving,
			effects: []Effect{{Kind: FetchByID, ID: 99}},
		},
		{
			name:  "lookup pending",
			in:    Input{PathID: 99, HasPath: true, Lookup: &Lookup{ID: 99, Pending: true}},
			phase: Resolving,
		},
		{
			name:  "lookup found",
			in:    Input{PathID: 99, HasPath: true, Lookup: &Lookup{ID: 99, Item: &model.BeatmapSet{ID: 99}}},
			phase: Open,
		},
		{
			name:    "lookup empty",
			in:      Input{PathID: 99, HasPath: true, Lookup: &Lookup{ID: 99}},
			phase:   NotFound,
			effects: []Effect{{Kind: Navigate, Path: "/", Replace: true}},
		},
		{
			name:    "lookup failed",
			in:      Input{PathID: 99, HasPath: true, Lookup: &Lookup{ID: 99, Err: errors.New("502")}},
			phase:   NotFound,
			effects: []Effect{{Kind: Navigate, Path: "/", Replace: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, effects := Reduce(tt.in)
			require.Equal(t, tt.phase, state.Phase)
			require.Equal(t, tt.effects, effects)

			if tt.phase == Closed {
				require.Zero(t, state.ID)
			} else {
				require.Equal(t, tt.in.PathID, state.ID)
			}
			if tt.phase == Open {
				require.NotNil(t, state.Item)
				require.Equal(t, tt.in.PathID, state.Item.ID)
			} else {
				require.Nil(t, state.Item)
			}
			if tt.wantLocal {
				require.Same(t, list[1], state.Item)
			}
		})
	}
}

func TestResolver_LocalHitNeverFetches(t *testing.T) {
	router := route.NewRouter("/beatmapsets/42")
	fetcher := &fakeFetcher{}
	r := NewResolver(router, fetcher, nil)

	list := items(1, 42, 3)
	cmd := r.Sync(context.Background(), collection.Snapshot{Items: list})

	require.Nil(t, cmd)
	require.Equal(t, Open, r.State().Phase)
	require.Same(t, list[1], r.State().Item)
	require.Empty(t, fetcher.calls)
}

func TestResolver_DefersUntilPrimaryLoaded(t *testing.T) {
	router := route.NewRouter("/beatmapsets/99")
	fetcher := &fakeFetcher{sets: map[int64]*model.BeatmapSet{99: {ID: 99}}}
	r := NewResolver(router, fetcher, nil)

	require.Nil(t, r.Sync(context.Background(), collection.Snapshot{Loading: true}))
	require.Equal(t, Resolving, r.State().Phase)
	require.Empty(t, fetcher.calls)

	msgs := run(t, r.Sync(context.Background(), collection.Snapshot{Items: items(1)}))
	require.Equal(t, []int64{99}, fetcher.calls)
	require.Len(t, msgs, 1)
	require.Equal(t, Resolving, r.State().Phase)

	require.True(t, r.ApplyLookup(msgs[0]))
	require.Nil(t, r.Sync(context.Background(), collection.Snapshot{Items: items(1)}))
	require.Equal(t, Open, r.State().Phase)
	require.Equal(t, int64(99), r.State().Item.ID)
}

func TestResolver_FetchesExactlyOnce(t *testing.T) {
	router := route.NewRouter("/beatmapsets/99")
	fetcher := &fakeFetcher{sets: map[int64]*model.BeatmapSet{99: {ID: 99}}}
	r := NewResolver(router, fetcher, nil)
	snap := collection.Snapshot{Items: items(1)}

	msgs := run(t, r.Sync(context.Background(), snap))
	for range 3 {
		require.Nil(t, r.Sync(context.Background(), snap), "pending lookup must not be reissued")
	}
	require.True(t, r.ApplyLookup(msgs[0]))
	for range 3 {
		require.Nil(t, r.Sync(context.Background(), snap))
	}

	require.Equal(t, []int64{99}, fetcher.calls)
	require.Equal(t, Open, r.State().Phase)
}

func TestResolver_NotFoundRedirects(t *testing.T) {
	router := route.NewRouter("/")
	router.Navigate("/beatmapsets/99", false)
	fetcher := &fakeFetcher{}
	r := NewResolver(router, fetcher, nil)
	snap := collection.Snapshot{Items: items(1)}

	msgs := run(t, r.Sync(context.Background(), snap))
	require.True(t, r.ApplyLookup(msgs[0]))
	require.Nil(t, r.Sync(context.Background(), snap))

	require.Equal(t, Closed, r.State().Phase)
	require.Equal(t, "/", router.Path())
	require.True(t, router.Back())
	require.Equal(t, "/", router.Path(), "redirect replaces the detail entry")
	require.False(t, router.Back())
	require.Equal(t, []int64{99}, fetcher.calls)
}

func TestResolver_FetchErrorRedirects(t *testing.T) {
	router := route.NewRouter("/beatmapsets/99")
	fetcher := &fakeFetcher{err: &mirror.FetchError{Op: "beatmapset", Status: 500}}
	r := NewResolver(router, fetcher, nil)
	snap := collection.Snapshot{}

	msgs := run(t, r.Sync(context.Background(), snap))
	require.True(t, r.ApplyLookup(msgs[0]))
	r.Sync(context.Background(), snap)

	require.Equal(t, Closed, r.State().Phase)
	require.Equal(t, "/", router.Path())
}

func TestResolver_EmptyLookupCountsAsNotFound(t *testing.T) {
	router := route.NewRouter("/beatmapsets/5")
	r := NewResolver(router, &fakeFetcher{}, nil)

	run(t, r.Sync(context.Background(), collection.Snapshot{}))
	require.True(t, r.ApplyLookup(LookupMsg{ID: 5}))
	r.Sync(context.Background(), collection.Snapshot{})

	require.Equal(t, Closed, r.State().Phase)
	require.Equal(t, "/", router.Path())
}

func TestResolver_StaleLookupIgnored(t *testing.T) {
	router := route.NewRouter("/beatmapsets/7")
	fetcher := &fakeFetcher{sets: map[int64]*model.BeatmapSet{7: {ID: 7}, 8: {ID: 8}}}
	r := NewResolver(router, fetcher, nil)
	snap := collection.Snapshot{}

	first := run(t, r.Sync(context.Background(), snap))

	router.Navigate("/beatmapsets/8", false)
	second := run(t, r.Sync(context.Background(), snap))

	require.False(t, r.ApplyLookup(first[0]))
	require.True(t, r.ApplyLookup(second[0]))
	r.Sync(context.Background(), snap)

	require.Equal(t, Open, r.State().Phase)
	require.Equal(t, int64(8), r.State().Item.ID)
	require.Equal(t, []int64{7, 8}, fetcher.calls)
}

func TestResolver_Close(t *testing.T) {
	t.Run("from open", func(t *testing.T) {
		router := route.NewRouter("/beatmapsets/42")
		r := NewResolver(router, &fakeFetcher{}, nil)
		r.Sync(context.Background(), collection.Snapshot{Items: items(42)})
		require.Equal(t, Open, r.State().Phase)

		r.Close()
		require.Equal(t, Closed, r.State().Phase)
		require.Equal(t, "/", router.Path())
	})

	t.Run("from resolving", func(t *testing.T) {
		router := route.NewRouter("/beatmapsets/99")
		r := NewResolver(router, &fakeFetcher{}, nil)
		msgs := run(t, r.Sync(context.Background(), collection.Snapshot{}))
		require.Equal(t, Resolving, r.State().Phase)

		r.Close()
		require.Equal(t, Closed, r.State().Phase)
		require.Equal(t, "/", router.Path())
		require.False(t, r.ApplyLookup(msgs[0]), "lookup for a closed selection is dropped")
	})
}

func TestResolver_Open(t *testing.T) {
	router := route.NewRouter("")
	r := NewResolver(router, &fakeFetcher{}, nil)

	r.Open(42)
	require.Equal(t, "/beatmapsets/42", router.Path())

	r.Sync(context.Background(), collection.Snapshot{Items: items(42)})
	require.Equal(t, Open, r.State().Phase)
}

func TestResolver_AgainstMirror(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		paths = append(paths, req.URL.Path)
		mu.Unlock()

		switch req.URL.Path {
		case "/v2/search":
			w.Write([]byte(`{"beatmapsets": [{"id": 42, "title": "Local"}]}`))
		default:
			w.Write([]byte(`null`))
		}
	}))
	defer srv.Close()

	client := mirror.NewClient(srv.URL, bhttp.NewClient(), nil)
	fetcher := collection.NewFetcher(client, nil)
	ctx := context.Background()

	// id 42 is served from the search results
	router := route.NewRouter("/beatmapsets/42")
	r := NewResolver(router, client, nil)
	searchCmd := fetcher.Search(ctx, "")
	require.Nil(t, r.Sync(ctx, fetcher.Snapshot()))
	require.True(t, fetcher.Apply(searchCmd().(collection.ResultMsg)))
	require.Nil(t, r.Sync(ctx, fetcher.Snapshot()))
	require.Equal(t, Open, r.State().Phase)
	require.Equal(t, "Local", r.State().Item.Title)

	// id 99 is fetched once and redirects when the mirror answers null
	r.Open(99)
	msgs := run(t, r.Sync(ctx, fetcher.Snapshot()))
	require.Len(t, msgs, 1)
	require.Nil(t, r.Sync(ctx, fetcher.Snapshot()))
	require.True(t, r.ApplyLookup(msgs[0]))
	r.Sync(ctx, fetcher.Snapshot())

	require.Equal(t, Closed, r.State().Phase)
	require.Equal(t, "/", router.Path())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"/v2/search", "/v2/beatmapsets/99"}, paths)
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "resolving", Resolving.String())
	require.Equal(t, "unknown", Phase(9).String())
}
