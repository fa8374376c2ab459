// Package ioutils provides file system and image processing utilities
// for downloads.
//
// # File Operations
//
//	// Stream an archive to disk without leaving partial files behind
//	err := ioutils.WriteFileAtomic(ctx, "/songs/1001 Artist - Title.osz", body)
//
//	// Write a small file, creating parent directories
//	err := ioutils.WriteFile(ctx, "/songs/previews.m3u", []byte("#EXTM3U\n"))
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Image Processing
//
// The ImageService prepares beatmap covers:
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.Prepare(ctx, data, ioutils.CoverOptions{Resize: true, MaxSize: 1000})
package ioutils
