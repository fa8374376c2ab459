package selection

import (
	"github.com/handiism/beatmap-browser/internal/collection"
	"github.com/handiism/beatmap-browser/internal/model"
	"github.com/handiism/beatmap-browser/internal/route"
)

// Phase is the kind of selection.
type Phase int

const (
	// Closed means no set is selected.
	Closed Phase = iota
	// Resolving means a set id is selected but its data is not known yet.
	Resolving
	// Open means the selected set is known and shown.
	Open
	// NotFound means the selected id could not be resolved. It is left as
	// soon as the redirect to the index has been applied.
	NotFound
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Resolving:
		return "resolving"
	case Open:
		return "open"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// State is the current selection. ID is set for every phase but Closed;
// Item is set for Open only.
type State struct {
	Phase Phase
	ID    int64
	Item  *model.BeatmapSet
}

// Lookup records the secondary fetch of a single set by id.
type Lookup struct {
	ID      int64
	Pending bool
	Item    *model.BeatmapSet
	Err     error
}

// Input is everything the selection depends on.
type Input struct {
	// PathID is the id in the current path, valid when HasPath is set.
	PathID  int64
	HasPath bool

	// Items and Loading come from the primary search.
	Items   []*model.BeatmapSet
	Loading bool

	// Lookup is the secondary fetch, if one was started.
	Lookup *Lookup
}

// EffectKind names a side effect requested by Reduce.
type EffectKind int

const (
	// FetchByID asks for the set with Effect.ID to be fetched.
	FetchByID EffectKind = iota
	// Navigate asks for the router to move to Effect.Path.
	Navigate
)

// Effect is a side effect the caller must carry out.
type Effect struct {
	Kind    EffectKind
	ID      int64
	Path    string
	Replace bool
}

// Reduce computes the selection for in and the effects needed to make
// progress. It has no side effects of its own.
//
// The rules, in order:
//   - no id in the path: Closed
//   - id present in the primary list: Open with that item, no network
//   - primary list still loading: Resolving, nothing is fetched yet
//   - no lookup for this id: Resolving and FetchByID
//   - lookup pending: Resolving
//   - lookup found the set: Open with the fetched item
//   - lookup failed or came back empty: NotFound and a redirect to the index
func Reduce(in Input) (State, []Effect) {
	if !in.HasPath {
		return State{Phase: Closed}, nil
	}

	id := in.PathID
	if item, ok := collection.Find(in.Items, id); ok {
		return State{Phase: Open, ID: id, Item: item}, nil
	}

	if in.Loading {
		return State{Phase: Resolving, ID: id}, nil
	}

	lk := in.Lookup
	switch {
	case lk == nil || lk.ID != id:
		return State{Phase: Resolving, ID: id}, []Effect{{Kind: FetchByID, ID: id}}
	case lk.Pending:
		return State{Phase: Resolving, ID: id}, nil
	case lk.Err == nil && lk.Item != nil:
		return State{Phase: Open, ID: id, Item: lk.Item}, nil
	default:
		return State{Phase: NotFound, ID: id},
			[]Effect{{Kind: Navigate, Path: route.IndexPath, Replace: true}}
	}
}
