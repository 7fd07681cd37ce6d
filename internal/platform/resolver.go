package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/tunegrab/tunegrab/internal/model"
)

// Timeout constants
const (
	DefaultResolveTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistURLParam   = "list="
	VideoURLParam      = "v="
	URLParamSeparator  = "&"
	ShortVideoURLHost  = "youtu.be/"
	YouTubeWatchFormat = "https://www.youtube.com/watch?v=%s"
)

// Resolver turns a user-supplied URL into an ordered list of playlist items
// using the yt-dlp library. Resolution failures are fatal to the job; the
// coordinator reports them once and processes no items.
type Resolver struct {
	timeout time.Duration
}

// NewResolver creates a resolver with the default timeout
func NewResolver() *Resolver {
	return &Resolver{timeout: DefaultResolveTimeout}
}

// SetTimeout sets the timeout for resolution
func (r *Resolver) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// Resolve parses the URL and returns the resolved playlist. A plain watch
// URL resolves to a one-item playlist so both flow through the same
// pipeline.
func (r *Resolver) Resolve(ctx context.Context, url string) (*model.Playlist, error) {
	if !IsSupportedURL(url) {
		return nil, fmt.Errorf("invalid URL format: %q", url)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if IsPlaylistURL(url) {
		return r.resolvePlaylist(ctx, url)
	}

	videoID := ExtractVideoID(url)
	if videoID == "" {
		return nil, fmt.Errorf("could not extract video ID from URL: %q", url)
	}
	return model.SingleVideo(videoID, url), nil
}

// resolvePlaylist fetches the flat item list for a playlist URL
func (r *Resolver) resolvePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %q", url)
	}

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlist %s: %w", playlistID, err)
	}

	playlist := &model.Playlist{
		ID:    playlistID,
		URL:   url,
		Items: make([]*model.PlaylistItem, 0, len(items)),
	}
	for i, it := range items {
		playlist.Items = append(playlist.Items, &model.PlaylistItem{
			ID:       it.VideoID,
			Title:    it.Title,
			Position: i + 1,
			URL:      fmt.Sprintf(YouTubeWatchFormat, it.VideoID),
		})
	}
	return playlist, nil
}

// IsSupportedURL checks that the URL uses a web scheme
func IsSupportedURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// IsPlaylistURL checks if the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// ExtractPlaylistID extracts the playlist ID from the URL.
// Supported formats:
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
func ExtractPlaylistID(url string) string {
	return extractParam(url, PlaylistURLParam)
}

// ExtractVideoID extracts the video ID from a watch or short URL
func ExtractVideoID(url string) string {
	if id := extractParam(url, VideoURLParam); id != "" {
		return id
	}

	// youtu.be short links carry the ID as the path
	if idx := strings.Index(url, ShortVideoURLHost); idx >= 0 {
		id := url[idx+len(ShortVideoURLHost):]
		if qIdx := strings.IndexAny(id, "?&"); qIdx >= 0 {
			id = id[:qIdx]
		}
		return id
	}
	return ""
}

// extractParam returns the value following param, cut at the next separator
func extractParam(url, param string) string {
	// "?v=" or "&v=", never a bare substring of another parameter
	for _, prefix := range []string{"?" + param, "&" + param} {
		idx := strings.Index(url, prefix)
		if idx < 0 {
			continue
		}
		value := url[idx+len(prefix):]
		if sepIdx := strings.Index(value, URLParamSeparator); sepIdx >= 0 {
			value = value[:sepIdx]
		}
		return value
	}
	return ""
}
