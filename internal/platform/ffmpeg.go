package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FFmpeg executable name
const FFmpegCommand = "ffmpeg"

// FindFFmpeg locates the ffmpeg binary: system PATH first, then common
// install locations. No item can be converted without it, so callers treat
// a failure here as fatal for the whole job.
func FindFFmpeg() (string, error) {
	if path, err := exec.LookPath(FFmpegCommand); err == nil {
		return path, nil
	}

	for _, candidate := range commonFFmpegPaths() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("ffmpeg not found on PATH or in common install locations; install ffmpeg and retry")
}

// commonFFmpegPaths returns well-known install locations per OS
func commonFFmpegPaths() []string {
	switch runtime.GOOS {
	case OSWindows:
		localAppData := os.Getenv("LOCALAPPDATA")
		return []string{
			filepath.Join(localAppData, "Programs", "ffmpeg", "bin", "ffmpeg.exe"),
			filepath.Join("C:\\", "Program Files", "FFmpeg", "bin", "ffmpeg.exe"),
		}
	case OSDarwin:
		return []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
		}
	default:
		return []string{
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	}
}

// FFmpegLocation returns the directory containing the binary, the form the
// extraction tool expects for its --ffmpeg-location option
func FFmpegLocation(ffmpegPath string) string {
	if ffmpegPath == "" {
		return ""
	}
	return filepath.Dir(ffmpegPath)
}
