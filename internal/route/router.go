package route

// Router is an in-memory navigation history.
//
// It plays the role a browser location plays for a web frontend: the
// current path decides which page is shown and, for the detail page, which
// beatmap set is selected. Router is not safe for concurrent use.
type Router struct {
	history []string
}

// NewRouter creates a router positioned at initial, or at the index when
// initial is empty.
func NewRouter(initial string) *Router {
	if initial == "" {
		initial = IndexPath
	}
	return &Router{history: []string{Clean(initial)}}
}

// Path returns the current path.
func (r *Router) Path() string {
	return r.history[len(r.history)-1]
}

// Current returns the parsed current path.
func (r *Router) Current() Route {
	return Parse(r.Path())
}

// BeatmapsetID returns the id of the detail route, if the router is on one.
func (r *Router) BeatmapsetID() (int64, bool) {
	rt := r.Current()
	if rt.Kind != KindBeatmapset {
		return 0, false
	}
	return rt.ID, true
}

// Navigate moves to path. With replace the current entry is overwritten
// instead of pushing a new one. Navigating to the current path is a no-op
// and reports false.
func (r *Router) Navigate(path string, replace bool) bool {
	path = Clean(path)
	if path == r.Path() {
		return false
	}
	if replace {
		r.history[len(r.history)-1] = path
	} else {
		r.history = append(r.history, path)
	}
	return true
}

// Back pops the current entry. It reports false when there is nowhere to go.
func (r *Router) Back() bool {
	if len(r.history) < 2 {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	return true
}
