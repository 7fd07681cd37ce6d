package download

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// Output template passed to the extraction tool
const outputTemplate = "%(title)s.%(ext)s"

// Audio format produced by the extraction tool's postprocessor
const audioFormat = "mp3"

// YTDLPFetcher performs the real extraction+conversion call through the
// yt-dlp library, which drives ffmpeg for the MP3 transcode.
type YTDLPFetcher struct{}

// NewYTDLPFetcher creates the production fetcher
func NewYTDLPFetcher() *YTDLPFetcher {
	return &YTDLPFetcher{}
}

// Fetch downloads one item and converts it to MP3, returning the written
// file path
func (f *YTDLPFetcher) Fetch(ctx context.Context, item *model.PlaylistItem, opts FetchOptions) (string, error) {
	dl := ytdlp.New().
		ExtractAudio().
		AudioFormat(audioFormat).
		AudioQuality(opts.Quality.String() + "K").
		NoPlaylist().
		Output(filepath.Join(opts.OutputDir, outputTemplate))

	if opts.FFmpegLocation != "" {
		dl = dl.FFmpegLocation(opts.FFmpegLocation)
	}
	if opts.CookieBrowser != "" {
		dl = dl.CookiesFromBrowser(opts.CookieBrowser)
	}

	result, err := dl.Run(ctx, item.URL)
	if err != nil {
		return "", err
	}

	return f.outputPath(result, item, opts), nil
}

// outputPath extracts the written filename from the tool's result, falling
// back to the deterministic path computed from the item title
func (f *YTDLPFetcher) outputPath(result *ytdlp.Result, item *model.PlaylistItem, opts FetchOptions) string {
	if result != nil {
		if info, err := result.GetExtractedInfo(); err == nil && len(info) > 0 && info[0].Filename != nil {
			name := *info[0].Filename
			// the reported filename predates the audio postprocessor
			ext := filepath.Ext(name)
			if ext != "" && ext != platform.MP3Extension {
				name = strings.TrimSuffix(name, ext) + platform.MP3Extension
			}
			return name
		}
	}
	return platform.OutputPath(opts.OutputDir, item.DisplayTitle())
}
