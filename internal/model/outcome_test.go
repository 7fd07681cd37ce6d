package model

import (
	"testing"
)

func TestOutcomeKind_IsSkip(t *testing.T) {
	tests := []struct {
		kind     OutcomeKind
		expected bool
	}{
		{OutcomeSuccess, false},
		{OutcomeSkippedExists, true},
		{OutcomeSkippedAgeRestricted, true},
		{OutcomeSkippedAuthRequired, true},
		{OutcomeFailed, false},
		{OutcomeCancelled, false},
		{OutcomeNotAttempted, false},
	}

	for _, test := range tests {
		if got := test.kind.IsSkip(); got != test.expected {
			t.Errorf("IsSkip() for %s = %v, expected %v", test.kind, got, test.expected)
		}
	}
}

func TestQuality_IsValid(t *testing.T) {
	tests := []struct {
		quality  Quality
		expected bool
	}{
		{Quality128, true},
		{Quality192, true},
		{Quality256, true},
		{Quality320, true},
		{Quality("64"), false},
		{Quality(""), false},
		{Quality("best"), false},
	}

	for _, test := range tests {
		if got := test.quality.IsValid(); got != test.expected {
			t.Errorf("IsValid() for %q = %v, expected %v", test.quality, got, test.expected)
		}
	}
}

func TestQuality_Label(t *testing.T) {
	if got := Quality192.Label(); got != "192 kbps" {
		t.Errorf("Label() = %q, expected '192 kbps'", got)
	}
}

func TestNewJob_Defaults(t *testing.T) {
	job := NewJob("https://www.youtube.com/playlist?list=PLtest", "/tmp/music", Quality256)

	if job.ID == "" {
		t.Error("Expected job ID to be generated")
	}
	if job.Workers != DefaultWorkers {
		t.Errorf("Expected %d workers, got %d", DefaultWorkers, job.Workers)
	}
	if job.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("Expected %d max attempts, got %d", DefaultMaxAttempts, job.MaxAttempts)
	}
	if !job.SkipExisting {
		t.Error("Expected skip existing to default to true")
	}
	if job.Quality != Quality256 {
		t.Errorf("Expected quality 256, got %s", job.Quality)
	}
}

func TestNewJob_InvalidQualityFallsBack(t *testing.T) {
	job := NewJob("https://example.com", "/tmp", Quality("999"))
	if job.Quality != DefaultQuality {
		t.Errorf("Expected invalid quality to fall back to %s, got %s", DefaultQuality, job.Quality)
	}
}

func TestJob_Cancel(t *testing.T) {
	job := NewJob("https://example.com", "/tmp", DefaultQuality)

	if job.Cancelled() {
		t.Error("New job should not be cancelled")
	}

	job.Cancel()

	if !job.Cancelled() {
		t.Error("Expected job to report cancelled after Cancel()")
	}
}

func TestPlaylistItem_DisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		url      string
		expected string
	}{
		{"Some Song", "https://youtube.com/watch?v=abc", "Some Song"},
		{"", "https://youtube.com/watch?v=abc", "https://youtube.com/watch?v=abc"},
	}

	for _, test := range tests {
		item := &PlaylistItem{Title: test.title, URL: test.url}
		if got := item.DisplayTitle(); got != test.expected {
			t.Errorf("DisplayTitle() with title=%q = %q, expected %q", test.title, got, test.expected)
		}
	}
}

func TestSingleVideo(t *testing.T) {
	p := SingleVideo("dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	if p.Len() != 1 {
		t.Fatalf("Expected 1 item, got %d", p.Len())
	}
	if p.Items[0].ID != "dQw4w9WgXcQ" {
		t.Errorf("Expected item ID 'dQw4w9WgXcQ', got %q", p.Items[0].ID)
	}
	if p.Items[0].Position != 1 {
		t.Errorf("Expected position 1, got %d", p.Items[0].Position)
	}
}
