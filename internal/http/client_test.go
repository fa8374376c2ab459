package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_GetJSON(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"name":"set"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	err := NewClient(WithUserAgent("tester")).GetJSON(context.Background(), srv.URL, &out)
	require.NoError(t, err)
	require.Equal(t, "set", out.Name)
	require.Equal(t, "tester", gotUA)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient().Get(context.Background(), srv.URL)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusBadGateway, statusErr.Code)
	require.Contains(t, err.Error(), "HTTP 502")
}

func TestClient_EmptyAndMalformedBody(t *testing.T) {
	body := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	var out map[string]any
	err := NewClient().GetJSON(context.Background(), srv.URL, &out)
	require.ErrorIs(t, err, ErrEmptyBody)

	body = "{broken"
	err = NewClient().GetJSON(context.Background(), srv.URL, &out)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmptyBody)
}

func TestClient_DownloadProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	var last int64
	err := NewClient().Download(context.Background(), srv.URL, &buf, func(written, total int64) {
		last = written
	})
	require.NoError(t, err)
	require.Equal(t, payload, buf.Bytes())
	require.Equal(t, int64(len(payload)), last)
}
