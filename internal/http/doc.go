// Package http provides the HTTP client used to talk to the beatmap mirror.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Non-2xx responses as *StatusError
//   - JSON decoding of API payloads
//   - Streaming downloads with progress tracking
//   - Timeout and proxy configuration
//
// # Basic Usage
//
//	client := http.NewClient(http.WithTimeout(30*time.Second))
//
//	var resp dto.SearchResponse
//	err := client.GetJSON(ctx, "https://mirror.example/v2/search", &resp)
//
//	err = client.Download(ctx, archiveURL, file, func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Errors
//
// Callers that need the status code unwrap it:
//
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) && statusErr.Code == 404 {
//	    // gone from the mirror
//	}
//
// A 2xx answer with an empty body yields ErrEmptyBody from GetJSON, which the
// mirror uses for sets it does not know.
package http
