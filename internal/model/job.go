package model

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Quality is the target MP3 bitrate in kbps
type Quality string

const (
	Quality128 Quality = "128"
	Quality192 Quality = "192"
	Quality256 Quality = "256"
	Quality320 Quality = "320"
)

// Default values
const (
	DefaultQuality     = Quality192
	DefaultWorkers     = 2
	DefaultMaxAttempts = 3
)

// String returns the raw bitrate value passed to the extraction tool
func (q Quality) String() string {
	return string(q)
}

// Label returns the human readable form shown in the UI (e.g. "192 kbps")
func (q Quality) Label() string {
	return string(q) + " kbps"
}

// IsValid returns true if q is one of the supported bitrates
func (q Quality) IsValid() bool {
	switch q {
	case Quality128, Quality192, Quality256, Quality320:
		return true
	}
	return false
}

// QualityOptions returns the supported bitrates in ascending order
func QualityOptions() []Quality {
	return []Quality{Quality128, Quality192, Quality256, Quality320}
}

// Job represents one end-to-end user request to convert a URL's contents
// to MP3 files. A Job is owned by the pipeline coordinator; only the
// cancellation flag is shared with other goroutines.
type Job struct {
	ID            string
	URL           string
	OutputDir     string
	Quality       Quality
	Workers       int    // concurrent downloads
	MaxAttempts   int    // attempts per item before recording a failure
	SkipExisting  bool   // skip items whose output file already exists
	CookieBrowser string // browser name for cookie passthrough, empty for none
	CreatedAt     time.Time

	cancelled atomic.Bool
}

// NewJob creates a job with default concurrency and retry limits
func NewJob(url, outputDir string, quality Quality) *Job {
	if !quality.IsValid() {
		quality = DefaultQuality
	}
	return &Job{
		ID:           uuid.NewString(),
		URL:          url,
		OutputDir:    outputDir,
		Quality:      quality,
		Workers:      DefaultWorkers,
		MaxAttempts:  DefaultMaxAttempts,
		SkipExisting: true,
		CreatedAt:    time.Now(),
	}
}

// Cancel sets the cooperative cancellation flag. Already-running attempts
// finish; no new items are dispatched and no further retries begin.
func (j *Job) Cancel() {
	j.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested
func (j *Job) Cancelled() bool {
	return j.cancelled.Load()
}
