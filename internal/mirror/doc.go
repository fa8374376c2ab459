// Package mirror is the client for a beatmap mirror that serves osu!
// beatmap sets in the v2 API shape.
//
// Two endpoints are used:
//
//	GET {base}/v2/search[?q=...]      -> {"beatmapsets": [...]}
//	GET {base}/v2/beatmapsets/{id}    -> a beatmap set object or null
//
// Responses are decoded with the types in the dto subpackage and converted
// to model.BeatmapSet values. Failures come back as *FetchError; a lookup
// for an id the mirror does not know returns ErrNotFound.
//
// The package also builds the URLs the UI links to: the archive download
// (DownloadURL), the osu!direct link (DirectURL) and the official page
// (WebURL).
package mirror
