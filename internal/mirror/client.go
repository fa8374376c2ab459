package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	bhttp "github.com/handiism/beatmap-browser/internal/http"
	"github.com/handiism/beatmap-browser/internal/mirror/dto"
	"github.com/handiism/beatmap-browser/internal/model"
)

// DefaultBaseURL is the public mirror used when no base is configured.
const DefaultBaseURL = "https://catboy.best/api"

// Client talks to a beatmap mirror exposing the osu! v2 data shape.
//
// Example usage:
//
//	client := mirror.NewClient(mirror.DefaultBaseURL, bhttp.NewClient(), logger)
//
//	sets, err := client.Search(ctx, "camellia")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, set := range sets {
//	    fmt.Printf("%d %s - %s\n", set.ID, set.Artist, set.Title)
//	}
type Client struct {
	base   string
	http   *bhttp.Client
	logger *slog.Logger
}

// NewClient creates a mirror client rooted at base. A nil logger discards
// output.
func NewClient(base string, hc *bhttp.Client, logger *slog.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if hc == nil {
		hc = bhttp.NewClient()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   hc,
		logger: logger,
	}
}

// BaseURL returns the mirror root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

// Search returns the beatmap sets matching query. An empty query returns the
// mirror's default listing; any other query is sent as is.
//
// A payload without a beatmapsets array is a *FetchError, not an empty
// result.
func (c *Client) Search(ctx context.Context, query string) ([]*model.BeatmapSet, error) {
	u := c.base + "/v2/search"
	if query != "" {
		u += "?q=" + queryEscape(query)
	}

	var resp dto.SearchResponse
	if err := c.http.GetJSON(ctx, u, &resp); err != nil {
		if errors.Is(err, bhttp.ErrEmptyBody) {
			err = errors.New("empty search response")
		}
		return nil, c.fail("search", u, err)
	}
	if resp.Error != nil && *resp.Error != "" {
		return nil, c.fail("search", u, errors.New(*resp.Error))
	}
	if resp.Beatmapsets == nil {
		return nil, c.fail("search", u, errors.New("response has no beatmapsets array"))
	}

	sets := make([]*model.BeatmapSet, 0, len(resp.Beatmapsets))
	for _, bs := range resp.Beatmapsets {
		if bs.Empty() {
			continue
		}
		sets = append(sets, bs.ToBeatmapSet())
	}

	c.logger.Debug("search finished", "query", query, "results", len(sets))
	return sets, nil
}

// Beatmapset fetches a single beatmap set by id.
//
// Returns ErrNotFound when the mirror has no such set, and a *FetchError for
// transport, status, or decoding failures.
func (c *Client) Beatmapset(ctx context.Context, id int64) (*model.BeatmapSet, error) {
	u := c.base + "/v2/beatmapsets/" + strconv.FormatInt(id, 10)

	var raw json.RawMessage
	if err := c.http.GetJSON(ctx, u, &raw); err != nil {
		if errors.Is(err, bhttp.ErrEmptyBody) {
			return nil, ErrNotFound
		}
		return nil, c.fail("beatmapset", u, err)
	}
	if falsy(raw) {
		c.logger.Debug("beatmap set not found", "id", id)
		return nil, ErrNotFound
	}

	var bs *dto.Beatmapset
	if err := json.Unmarshal(raw, &bs); err != nil {
		return nil, c.fail("beatmapset", u, err)
	}
	if bs.Empty() {
		c.logger.Debug("beatmap set not found", "id", id)
		return nil, ErrNotFound
	}

	return bs.ToBeatmapSet(), nil
}

// DownloadURL returns the archive URL for a set, optionally without video.
func (c *Client) DownloadURL(id int64, noVideo bool) string {
	u := c.base + "/d/" + strconv.FormatInt(id, 10)
	if noVideo {
		u += "?nv=1"
	}
	return u
}

// DirectURL returns the osu!direct link that makes the game client download
// the set.
func DirectURL(id int64) string {
	return "osu://dl/" + strconv.FormatInt(id, 10)
}

// WebURL returns the official beatmap set page.
func WebURL(id int64) string {
	return "https://osu.ppy.sh/beatmapsets/" + strconv.FormatInt(id, 10)
}

// falsy reports whether raw is a JSON literal the mirror uses for "no such
// set".
func falsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", "0", `""`:
		return true
	}
	return false
}

// queryEscape escapes s for a query value with spaces as %20.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (c *Client) fail(op, u string, err error) error {
	fe := &FetchError{Op: op, URL: u, Err: err}

	var statusErr *bhttp.StatusError
	if errors.As(err, &statusErr) {
		fe.Status = statusErr.Code
	}

	c.logger.Warn("mirror request failed", "op", op, "url", u, "err", err)
	return fe
}
