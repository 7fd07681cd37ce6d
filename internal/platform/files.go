package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Output file constants
const (
	MP3Extension = ".mp3"

	// InvalidFilenameChars are replaced the same way the extraction tool
	// replaces them, so the skip-existing check matches its output names.
	InvalidFilenameChars = `<>:"/\|?*`
)

// Default output directory name under the user's Music folder
const OutputDirName = "TuneGrab"

// SanitizeFilename replaces characters that are invalid in filenames and
// trims trailing dots and spaces
func SanitizeFilename(name string) string {
	sanitized := name
	for _, c := range InvalidFilenameChars {
		sanitized = strings.ReplaceAll(sanitized, string(c), "_")
	}
	return strings.TrimRight(sanitized, ". ")
}

// OutputPath returns the deterministic MP3 path for an item title inside dir
func OutputPath(dir, title string) string {
	return filepath.Join(dir, SanitizeFilename(title)+MP3Extension)
}

// OutputExists reports whether the MP3 for an item title is already present
// in dir
func OutputExists(dir, title string) bool {
	info, err := os.Stat(OutputPath(dir, title))
	return err == nil && !info.IsDir()
}

// EnsureDir creates the directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, DefaultDirPermissions)
	}
	return nil
}

// DefaultOutputDir returns the default output directory under the user's
// Music folder
func DefaultOutputDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Music", OutputDirName), nil
}

// OpenFolder opens the directory in the system file manager
func OpenFolder(dir string) error {
	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command("open", dir).Run()
	case OSWindows:
		return exec.Command("explorer", dir).Run()
	case OSLinux:
		return exec.Command("xdg-open", dir).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
