// Package convert wraps the ffmpeg binary: startup verification for the
// download pipeline and standalone conversion of a local media file to MP3.
package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tunegrab/tunegrab/internal/model"
)

// FFmpeg argument constants
const (
	AudioCodec     = "libmp3lame"
	NoVideoFlag    = "-vn"
	InputFlag      = "-i"
	CodecFlag      = "-codec:a"
	BitrateFlag    = "-b:a"
	OverwriteFlag  = "-y"
	LogLevelFlag   = "-loglevel"
	FFmpegLogLevel = "error"
	VersionFlag    = "-version"

	OutputExtension = ".mp3"
)

// Service converts local media files to MP3 via ffmpeg
type Service struct {
	ffmpegPath string
}

// NewService creates a conversion service using the given ffmpeg binary
func NewService(ffmpegPath string) *Service {
	return &Service{ffmpegPath: ffmpegPath}
}

// Verify checks that the configured ffmpeg binary runs. The pipeline calls
// this once up front; a failure is fatal to the job since no item can be
// converted without it.
func (s *Service) Verify() error {
	if s.ffmpegPath == "" {
		return fmt.Errorf("ffmpeg is not configured; install ffmpeg and retry")
	}
	if err := exec.Command(s.ffmpegPath, VersionFlag).Run(); err != nil {
		return fmt.Errorf("ffmpeg at %q is not runnable: %w", s.ffmpegPath, err)
	}
	return nil
}

// Convert extracts the audio track of inputPath into an MP3 next to it at
// the given bitrate and returns the output path
func (s *Service) Convert(ctx context.Context, inputPath string, quality model.Quality) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file does not exist: %s", inputPath)
	}

	outputPath := OutputPathFor(inputPath)
	if outputPath == inputPath {
		return "", fmt.Errorf("input is already an MP3: %s", inputPath)
	}

	cmd := exec.CommandContext(ctx, s.ffmpegPath, buildArgs(inputPath, outputPath, quality)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg failed for %s: %w: %s", inputPath, err, strings.TrimSpace(string(out)))
	}
	return outputPath, nil
}

// OutputPathFor returns the MP3 path the conversion of inputPath writes to
func OutputPathFor(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + OutputExtension
}

// buildArgs assembles the ffmpeg invocation for an audio-only MP3 extract
func buildArgs(inputPath, outputPath string, quality model.Quality) []string {
	return []string{
		LogLevelFlag, FFmpegLogLevel,
		InputFlag, inputPath,
		NoVideoFlag,
		CodecFlag, AudioCodec,
		BitrateFlag, quality.String() + "k",
		OverwriteFlag,
		outputPath,
	}
}
