// Package download provides the download orchestration logic for
// fetching beatmap sets from the mirror.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Resolve beatmap set ids through the mirror (or take known sets)
//  2. Download the .osz archives concurrently
//  3. Download cover art (optional, resized and converted to JPEG)
//  4. Download audio previews and tag them with ID3 metadata (optional)
//  5. Generate a playlist of the previews (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, httpClient, mirrorClient, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, []int64{39804, 1010865})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.StartDownloads(ctx)
//	if errors.Is(err, download.ErrIncomplete) {
//	    // some sets failed, see the error events
//	}
//
// # Concurrency
//
// settings.MaxConcurrentDownloads bounds how many sets are downloaded in
// parallel.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    SetID   int64
//	}
//
// # Retry Logic
//
// Failed downloads are automatically retried with exponential backoff,
// configurable via settings.DownloadMaxRetries, settings.DownloadRetryCooldown
// and settings.DownloadRetryExponent.
package download
