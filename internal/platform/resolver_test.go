package platform

import (
	"context"
	"testing"
)

func TestIsSupportedURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"http://youtube.com/playlist?list=PL1", true},
		{"ftp://example.com/file", false},
		{"youtube.com/watch?v=abc", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsSupportedURL(test.url); got != test.expected {
			t.Errorf("IsSupportedURL(%q) = %v, expected %v", test.url, got, test.expected)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PLabc123", "PLabc123"},
		{"https://www.youtube.com/watch?v=vid&list=PLabc123", "PLabc123"},
		{"https://www.youtube.com/watch?v=vid&list=PLabc123&start_radio=1", "PLabc123"},
		{"https://www.youtube.com/watch?v=vid", ""},
	}

	for _, test := range tests {
		if got := ExtractPlaylistID(test.url); got != test.expected {
			t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", test.url, got, test.expected)
		}
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/", ""},
	}

	for _, test := range tests {
		if got := ExtractVideoID(test.url); got != test.expected {
			t.Errorf("ExtractVideoID(%q) = %q, expected %q", test.url, got, test.expected)
		}
	}
}

func TestResolve_RejectsBadURLs(t *testing.T) {
	resolver := NewResolver()

	tests := []string{
		"not-a-url",
		"ftp://example.com",
		"",
		"https://www.youtube.com/", // no video or playlist ID
	}

	for _, url := range tests {
		if _, err := resolver.Resolve(context.Background(), url); err == nil {
			t.Errorf("Resolve(%q) expected an error, got nil", url)
		}
	}
}

func TestResolve_SingleVideo(t *testing.T) {
	resolver := NewResolver()

	playlist, err := resolver.Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if playlist.Len() != 1 {
		t.Fatalf("Expected 1 item, got %d", playlist.Len())
	}
	if playlist.Items[0].ID != "dQw4w9WgXcQ" {
		t.Errorf("Expected video ID 'dQw4w9WgXcQ', got %q", playlist.Items[0].ID)
	}
	if playlist.Items[0].Position != 1 {
		t.Errorf("Expected position 1, got %d", playlist.Items[0].Position)
	}
}
