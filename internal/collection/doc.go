// Package collection keeps the primary list of beatmap sets shown by the
// browser: the result of the most recent search.
//
// A search bumps a generation counter and marks the list as loading. Results
// are applied only when they belong to the latest generation, so a slow
// response for an old query never overwrites a newer one. A new result
// replaces the previous list wholesale.
package collection
