package model

// PlaylistItem represents a single resolved entry to download. Fields are
// set at resolution time and are immutable; the terminal Outcome for an
// item is tracked by the coordinator, not here.
type PlaylistItem struct {
	ID       string // video ID
	Title    string // may be empty for a bare watch URL until downloaded
	Position int    // 1-based ordinal within the playlist
	URL      string
}

// DisplayTitle returns the title, or the URL when the title is not known yet
func (pi *PlaylistItem) DisplayTitle() string {
	if pi.Title != "" {
		return pi.Title
	}
	return pi.URL
}

// Playlist represents a resolved playlist (or a single video wrapped as a
// one-item playlist) ready for download.
type Playlist struct {
	ID    string
	Title string
	URL   string
	Items []*PlaylistItem
}

// Len returns the number of resolved items
func (p *Playlist) Len() int {
	return len(p.Items)
}

// SingleVideo wraps one video ID into a one-item playlist so single watch
// URLs flow through the same pipeline as playlists.
func SingleVideo(videoID, url string) *Playlist {
	return &Playlist{
		ID:  videoID,
		URL: url,
		Items: []*PlaylistItem{
			{ID: videoID, Position: 1, URL: url},
		},
	}
}
