package route

import (
	"strconv"
	"strings"
)

// Paths of the fixed pages.
const (
	IndexPath = "/"
	AboutPath = "/about"
	DMCAPath  = "/dmca"
)

const beatmapsetPrefix = "/beatmapsets/"

// Kind identifies which page a path renders.
type Kind int

const (
	KindIndex Kind = iota
	KindBeatmapset
	KindAbout
	KindDMCA
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindBeatmapset:
		return "beatmapset"
	case KindAbout:
		return "about"
	case KindDMCA:
		return "dmca"
	default:
		return "not-found"
	}
}

// Route is a parsed path.
type Route struct {
	Kind Kind
	Path string
	// ID is set for KindBeatmapset only.
	ID int64
}

// BeatmapsetPath returns the detail path for a set.
func BeatmapsetPath(id int64) string {
	return beatmapsetPrefix + strconv.FormatInt(id, 10)
}

// Parse classifies path. Query strings, fragments and a trailing slash are
// ignored. The detail route only matches a positive decimal id.
func Parse(path string) Route {
	path = Clean(path)

	switch path {
	case IndexPath:
		return Route{Kind: KindIndex, Path: path}
	case AboutPath:
		return Route{Kind: KindAbout, Path: path}
	case DMCAPath:
		return Route{Kind: KindDMCA, Path: path}
	}

	if rest, ok := strings.CutPrefix(path, beatmapsetPrefix); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err == nil && id > 0 {
			return Route{Kind: KindBeatmapset, Path: path, ID: id}
		}
	}

	return Route{Kind: KindNotFound, Path: path}
}

// Clean normalises a path the way Parse sees it.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = IndexPath
		}
	}
	return path
}
