package download

import (
	"context"
	"fmt"
	"time"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
	"github.com/tunegrab/tunegrab/internal/throttle"
)

// itemTask processes one playlist item to a terminal outcome. All per-item
// errors are contained here and reported as data; nothing escalates to the
// coordinator as a fault.
type itemTask struct {
	job     *model.Job
	item    *model.PlaylistItem
	total   int
	fetcher Fetcher
	policy  *throttle.Policy
	obs     Observer
	opts    FetchOptions
	stop    <-chan struct{} // closed by Stop(); does not interrupt in-flight fetches
}

// run drives the item to a terminal outcome. Cancellation is honored at
// every suspension point: before the first attempt and before each retry.
func (t *itemTask) run(ctx context.Context) model.Outcome {
	outcome := model.Outcome{ItemID: t.item.ID, Position: t.item.Position}

	if t.job.SkipExisting && t.item.Title != "" && platform.OutputExists(t.job.OutputDir, t.item.Title) {
		t.logf("⊘ Skipped (already exists): %s", t.item.Title)
		outcome.Kind = model.OutcomeSkippedExists
		outcome.OutputPath = platform.OutputPath(t.job.OutputDir, t.item.Title)
		return outcome
	}

	var lastErr error
	for attempt := 0; attempt < t.job.MaxAttempts; attempt++ {
		if t.cancelled(ctx) {
			outcome.Kind = model.OutcomeCancelled
			outcome.Attempts = attempt
			return outcome
		}

		t.logf("[%d/%d] Downloading: %s", t.item.Position, t.total, t.item.DisplayTitle())
		t.obs.OnStatus(fmt.Sprintf("[%d/%d] %s", t.item.Position, t.total, truncate(t.item.DisplayTitle(), 50)))

		path, err := t.fetcher.Fetch(ctx, t.item, t.opts)
		if err == nil {
			t.logf("✓ Completed: %s", t.item.DisplayTitle())
			outcome.Kind = model.OutcomeSuccess
			outcome.OutputPath = path
			outcome.Attempts = attempt + 1
			return outcome
		}
		lastErr = err

		switch classifyFailure(err) {
		case failureAgeRestricted:
			t.logf("⚠ Skipped (age-restricted): %s", t.item.DisplayTitle())
			outcome.Kind = model.OutcomeSkippedAgeRestricted
			outcome.Attempts = attempt + 1
			return outcome
		case failureAuthRequired:
			t.logf("⚠ Skipped (authentication required): %s", t.item.DisplayTitle())
			outcome.Kind = model.OutcomeSkippedAuthRequired
			outcome.Attempts = attempt + 1
			return outcome
		}

		if attempt+1 >= t.job.MaxAttempts {
			break
		}

		backoff := t.policy.NextBackoff(attempt)
		t.logf("Retry %d/%d for %s after %s", attempt+1, t.job.MaxAttempts-1, t.item.DisplayTitle(), backoff.Round(100*time.Millisecond))
		if !t.sleep(ctx, backoff) {
			outcome.Kind = model.OutcomeCancelled
			outcome.Attempts = attempt + 1
			return outcome
		}
	}

	t.logf("✗ Failed after %d attempts: %s - %v", t.job.MaxAttempts, t.item.DisplayTitle(), lastErr)
	outcome.Kind = model.OutcomeFailed
	outcome.Attempts = t.job.MaxAttempts
	outcome.Err = lastErr
	return outcome
}

// cancelled reports whether the job or the surrounding context has been
// cancelled
func (t *itemTask) cancelled(ctx context.Context) bool {
	if t.job.Cancelled() || ctx.Err() != nil {
		return true
	}
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

// sleep waits for d, returning false if cancellation arrived first
func (t *itemTask) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return !t.cancelled(ctx)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return !t.cancelled(ctx)
	case <-t.stop:
		return false
	case <-ctx.Done():
		return false
	}
}

func (t *itemTask) logf(format string, args ...any) {
	t.obs.OnLog(fmt.Sprintf(format, args...))
}

// truncate shortens s for single-line status display
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
