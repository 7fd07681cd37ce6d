package download

import (
	"context"

	"github.com/tunegrab/tunegrab/internal/model"
)

// FetchOptions carries the per-job parameters of an extraction call
type FetchOptions struct {
	OutputDir      string
	Quality        model.Quality
	FFmpegLocation string // directory containing ffmpeg, empty for tool default
	CookieBrowser  string // browser name for cookie passthrough, empty for none
}

// Fetcher is the external extraction/conversion collaborator. One call
// downloads one item and writes its MP3, returning the output path. The
// pipeline treats it as a black box and classifies its errors; tests use a
// counting stub.
type Fetcher interface {
	Fetch(ctx context.Context, item *model.PlaylistItem, opts FetchOptions) (string, error)
}

// Resolver turns a user-supplied URL into an ordered playlist
type Resolver interface {
	Resolve(ctx context.Context, url string) (*model.Playlist, error)
}

// Observer is the one-way presentation boundary the pipeline reports to.
// Implementations must tolerate calls from worker goroutines.
type Observer interface {
	OnLog(line string)
	OnStatus(text string)
	OnProgress(done, total int)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil
// fields are ignored, so the zero value is a no-op observer.
type ObserverFuncs struct {
	Log      func(line string)
	Status   func(text string)
	Progress func(done, total int)
}

// OnLog calls the Log func if set
func (o ObserverFuncs) OnLog(line string) {
	if o.Log != nil {
		o.Log(line)
	}
}

// OnStatus calls the Status func if set
func (o ObserverFuncs) OnStatus(text string) {
	if o.Status != nil {
		o.Status(text)
	}
}

// OnProgress calls the Progress func if set
func (o ObserverFuncs) OnProgress(done, total int) {
	if o.Progress != nil {
		o.Progress(done, total)
	}
}

// NopObserver returns an observer that discards everything
func NopObserver() Observer {
	return ObserverFuncs{}
}
