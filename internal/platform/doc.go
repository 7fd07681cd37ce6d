package platform

// Package platform contains OS/platform integration and external tooling
// glue: output filename handling, ffmpeg discovery, browser cookie probing,
// playlist URL parsing, and playlist resolution via the yt-dlp library.
