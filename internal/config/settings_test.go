package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tunegrab/tunegrab/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), SettingsFileName))
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store := testStore(t)

	settings := store.Load()

	if settings.Quality != model.DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", model.DefaultQuality, settings.Quality)
	}
	if settings.Workers != model.DefaultWorkers {
		t.Errorf("Expected default workers %d, got %d", model.DefaultWorkers, settings.Workers)
	}
	if !settings.SkipExisting {
		t.Error("Expected skip existing to default to true")
	}
	if settings.OutputDir == "" {
		t.Error("Expected a non-empty default output directory")
	}
}

func TestLoad_CorruptFileReturnsDefaults(t *testing.T) {
	store := testStore(t)

	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	settings := store.Load()

	if settings.Quality != model.DefaultQuality {
		t.Errorf("Expected default quality on corrupt record, got %s", settings.Quality)
	}
	if settings.LastURL != "" {
		t.Errorf("Expected empty last URL on corrupt record, got %q", settings.LastURL)
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	store := testStore(t)

	saved := Settings{
		LastURL:      "https://www.youtube.com/playlist?list=PLtest",
		OutputDir:    "/music/out",
		Quality:      model.Quality320,
		SkipExisting: false,
		Workers:      4,
	}

	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded := store.Load()
	if loaded != saved {
		t.Errorf("Load() = %+v, expected %+v", loaded, saved)
	}
}

func TestSave_Overwrites(t *testing.T) {
	store := testStore(t)

	first := Defaults()
	first.LastURL = "https://example.com/first"
	if err := store.Save(first); err != nil {
		t.Fatalf("First Save() failed: %v", err)
	}

	second := Defaults()
	second.LastURL = "https://example.com/second"
	if err := store.Save(second); err != nil {
		t.Fatalf("Second Save() failed: %v", err)
	}

	if got := store.Load().LastURL; got != "https://example.com/second" {
		t.Errorf("Expected second URL after overwrite, got %q", got)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store := testStore(t)

	if err := store.Save(Defaults()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatalf("Failed to read settings directory: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only the settings file, found %v", names)
	}
}

func TestLoad_NormalizesOutOfRangeValues(t *testing.T) {
	store := testStore(t)

	raw := `{"last_url":"u","last_output_dir":"/d","last_quality":"999","last_skip_existing":true,"max_parallel_downloads":50}`
	if err := os.WriteFile(store.Path(), []byte(raw), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	settings := store.Load()

	if settings.Quality != model.DefaultQuality {
		t.Errorf("Expected invalid quality to normalize to %s, got %s", model.DefaultQuality, settings.Quality)
	}
	if settings.Workers != MaxWorkers {
		t.Errorf("Expected workers to clamp to %d, got %d", MaxWorkers, settings.Workers)
	}
}
