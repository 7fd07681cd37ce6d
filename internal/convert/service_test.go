package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/tunegrab/tunegrab/internal/model"
)

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/music/song.m4a", "/music/song.mp3"},
		{"/music/song.webm", "/music/song.mp3"},
		{"/music/song", "/music/song.mp3"},
		{"/music/a.b.c.opus", "/music/a.b.c.mp3"},
	}

	for _, test := range tests {
		if got := OutputPathFor(test.input); got != test.expected {
			t.Errorf("OutputPathFor(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestBuildArgs(t *testing.T) {
	args := buildArgs("/in/file.m4a", "/in/file.mp3", model.Quality256)
	joined := strings.Join(args, " ")

	for _, want := range []string{"-i /in/file.m4a", "-codec:a libmp3lame", "-b:a 256k", "-vn", "/in/file.mp3"} {
		if !strings.Contains(joined, want) {
			t.Errorf("buildArgs() = %q, missing %q", joined, want)
		}
	}
}

func TestVerify_MissingBinary(t *testing.T) {
	if err := NewService("").Verify(); err == nil {
		t.Error("Verify() with empty path expected an error, got nil")
	}

	if err := NewService("/nonexistent/ffmpeg").Verify(); err == nil {
		t.Error("Verify() with bogus path expected an error, got nil")
	}
}

func TestConvert_MissingInput(t *testing.T) {
	service := NewService("/usr/bin/ffmpeg")

	if _, err := service.Convert(context.Background(), "/nonexistent/file.m4a", model.Quality192); err == nil {
		t.Error("Convert() with missing input expected an error, got nil")
	}
}
