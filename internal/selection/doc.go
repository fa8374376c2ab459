// Package selection decides which beatmap set, if any, the detail overlay
// shows.
//
// The selected id comes from the router path. The set is looked up in the
// primary search results first; only when it is absent there and the
// primary search has settled is it fetched on its own, once per id. A set
// that cannot be fetched sends the router back to the index without
// showing an error.
//
// Reduce is the pure transition function. Resolver runs it against a
// route.Router and a mirror client inside the bubbletea update loop.
package selection
