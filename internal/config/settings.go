// Package config persists user preferences to a small JSON record shared by
// the GUI and the CLI. Loading never fails: a missing or corrupt record is
// treated as absent and replaced by defaults. Saving is atomic
// (write-temp-then-replace) so a crash mid-write cannot corrupt the record.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// Settings file constants
const (
	SettingsFileName = ".tunegrab_settings.json"
	settingsFileMode = 0644
)

// Worker count bounds
const (
	MinWorkers = 1
	MaxWorkers = 10
)

// Settings holds the persisted user preferences
type Settings struct {
	LastURL      string        `json:"last_url"`
	OutputDir    string        `json:"last_output_dir"`
	Quality      model.Quality `json:"last_quality"`
	SkipExisting bool          `json:"last_skip_existing"`
	Workers      int           `json:"max_parallel_downloads"`
}

// Defaults returns the settings used when no record exists
func Defaults() Settings {
	outputDir, err := platform.DefaultOutputDir()
	if err != nil {
		outputDir = os.TempDir()
	}
	return Settings{
		OutputDir:    outputDir,
		Quality:      model.DefaultQuality,
		SkipExisting: true,
		Workers:      model.DefaultWorkers,
	}
}

// Store reads and writes the settings record at a fixed path
type Store struct {
	path string
}

// NewStore creates a store for the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore creates a store at the conventional location in the user's
// home directory
func DefaultStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(homeDir, SettingsFileName)), nil
}

// Load returns the persisted settings, or defaults when the record is
// missing, unreadable, or corrupt. It never returns an error to the caller.
func (s *Store) Load() Settings {
	settings := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return Defaults()
	}

	return normalize(settings)
}

// Save writes the settings atomically: the record is written to a temporary
// file in the same directory and then renamed over the target.
func (s *Store) Save(settings Settings) error {
	data, err := json.MarshalIndent(normalize(settings), "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, settingsFileMode); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Path returns the location of the settings record
func (s *Store) Path() string {
	return s.path
}

// normalize clamps out-of-range values back to defaults
func normalize(settings Settings) Settings {
	if !settings.Quality.IsValid() {
		settings.Quality = model.DefaultQuality
	}
	if settings.Workers < MinWorkers {
		settings.Workers = model.DefaultWorkers
	}
	if settings.Workers > MaxWorkers {
		settings.Workers = MaxWorkers
	}
	if settings.OutputDir == "" {
		settings.OutputDir = Defaults().OutputDir
	}
	return settings
}
