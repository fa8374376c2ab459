package mirror

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bhttp "github.com/handiism/beatmap-browser/internal/http"
	"github.com/handiism/beatmap-browser/internal/model"
)

const setJSON = `{
	"id": 42,
	"title": "Freedom Dive",
	"title_unicode": null,
	"artist": "xi",
	"artist_unicode": "xi",
	"creator": "Nakagawa-Kanon",
	"user_id": 87065,
	"status": "ranked",
	"covers": {"cover": "https://assets.ppy.sh/beatmaps/42/covers/cover.jpg", "list@2x": "//assets.ppy.sh/42/list@2x.jpg"},
	"favourite_count": 1200,
	"play_count": -5,
	"preview_url": "//b.ppy.sh/preview/42.mp3",
	"source": null,
	"tags": "bms  touhou",
	"genre_id": 2,
	"language_id": null,
	"video": true,
	"storyboard": false,
	"bpm": 222.22,
	"rating": null,
	"ranked_date": "2012-05-31T07:28:40Z",
	"submitted_date": 1338280800,
	"last_updated": null,
	"availability": {"download_disabled": false},
	"beatmaps": [
		{"id": 1, "mode_int": 0, "difficulty_rating": 7.01, "version": "FOUR DIMENSIONS", "total_length": 263, "passcount": null},
		{"id": 2, "mode": "mania", "difficulty_rating": null, "version": "4K", "hit_length": 250, "passcount": 12}
	]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", bhttp.NewClient(), nil)
}

func TestClient_Search(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/search", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"beatmapsets": [` + setJSON + `, {}]}`))
	})

	sets, err := client.Search(context.Background(), "freedom dive")
	require.NoError(t, err)
	require.Equal(t, "q=freedom%20dive", gotQuery)
	require.Len(t, sets, 1)

	set := sets[0]
	require.Equal(t, int64(42), set.ID)
	require.Equal(t, model.StatusRanked, set.Status)
	require.Equal(t, int64(87065), set.CreatorID)
	require.Equal(t, 0, set.PlayCount)
	require.Equal(t, "https://b.ppy.sh/preview/42.mp3", set.PreviewURL)
	require.Equal(t, "https://assets.ppy.sh/42/list@2x.jpg", set.Covers.List2x)
	require.Equal(t, []string{"bms", "touhou"}, set.TagList())
	require.Equal(t, "2012-05-29T08:40:00Z", set.SubmittedDate)
	require.Empty(t, set.LastUpdated)
	require.False(t, set.HasRating)
	require.True(t, set.HasVideo)

	require.Len(t, set.Beatmaps, 2)
	require.Equal(t, model.ModeStandard, set.Beatmaps[0].Mode)
	require.Equal(t, 263, set.Beatmaps[0].TotalLength)
	require.False(t, set.Beatmaps[0].HasPassCount)
	require.Equal(t, model.ModeMania, set.Beatmaps[1].Mode)
	require.Equal(t, 0.0, set.Beatmaps[1].Rating)
	require.Equal(t, 250, set.Beatmaps[1].TotalLength)
	require.True(t, set.Beatmaps[1].HasLength)
	require.Equal(t, 12, set.Beatmaps[1].PassCount)
}

func TestClient_SearchEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"beatmapsets": []}`))
	})

	sets, err := client.Search(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, sets)
	require.Empty(t, sets)
}

func TestClient_SearchQueryEncoding(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"  ", "q=%20%20"},
		{"a&b=c", "q=a%26b%3Dc"},
		{"東方 remix", "q=%E6%9D%B1%E6%96%B9%20remix"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var gotQuery string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				w.Write([]byte(`{"beatmapsets": []}`))
			})

			_, err := client.Search(context.Background(), tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.want, gotQuery)
		})
	}
}

func TestClient_SearchFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"server error", http.StatusBadGateway, "", http.StatusBadGateway},
		{"malformed json", http.StatusOK, `{"beatmapsets": [`, 0},
		{"empty body", http.StatusOK, "", 0},
		{"error field", http.StatusOK, `{"error": "rate limited"}`, 0},
		{"null body", http.StatusOK, `null`, 0},
		{"empty object", http.StatusOK, `{}`, 0},
		{"null array", http.StatusOK, `{"beatmapsets": null}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			sets, err := client.Search(context.Background(), "x")
			require.Nil(t, sets)

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			require.Equal(t, "search", fe.Op)
			require.Equal(t, tt.wantStatus, fe.Status)
			require.NotEmpty(t, fe.Error())
		})
	}
}

func TestClient_Beatmapset(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v2/beatmapsets/42", r.URL.Path)
		w.Write([]byte(setJSON))
	})

	set, err := client.Beatmapset(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Freedom Dive", set.Title)
	require.Equal(t, "Freedom Dive", set.DisplayTitle())
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_BeatmapsetNotFound(t *testing.T) {
	for _, body := range []string{"null", "", "{}", `""`, "false", "0", " null\n"} {
		t.Run("body "+body, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			set, err := client.Beatmapset(context.Background(), 99)
			require.Nil(t, set)
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestClient_BeatmapsetHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Beatmapset(context.Background(), 7)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, http.StatusNotFound, fe.Status)
	require.False(t, errors.Is(err, ErrNotFound))

	var statusErr *bhttp.StatusError
	require.ErrorAs(t, err, &statusErr)
}

func TestURLs(t *testing.T) {
	client := NewClient("https://mirror.example/api/", nil, nil)

	require.Equal(t, "https://mirror.example/api", client.BaseURL())
	require.Equal(t, "https://mirror.example/api/d/42", client.DownloadURL(42, false))
	require.Equal(t, "https://mirror.example/api/d/42?nv=1", client.DownloadURL(42, true))
	require.Equal(t, "osu://dl/42", DirectURL(42))
	require.Equal(t, "https://osu.ppy.sh/beatmapsets/42", WebURL(42))
	require.Equal(t, DefaultBaseURL, NewClient("", nil, nil).BaseURL())
}
