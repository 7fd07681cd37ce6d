package download

// Package download implements the core pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It resolves a URL into playlist
// items, processes them through a fixed-size worker pool with politeness
// delays and retry backoff, aggregates outcomes into a shared tally, and
// reports progress through the Observer boundary.
