package download

import (
	"context"
	"fmt"
	"sync"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
	"github.com/tunegrab/tunegrab/internal/throttle"
)

// Verifier checks the conversion tool before any item is processed.
// *convert.Service implements it.
type Verifier interface {
	Verify() error
}

// Service is the pipeline coordinator: it resolves a job's URL into
// playlist items, feeds them to a fixed-size worker pool, aggregates
// outcomes into a tally, and forwards events to the Observer. One Run at a
// time per Service.
type Service struct {
	resolver Resolver
	fetcher  Fetcher
	policy   *throttle.Policy
	obs      Observer
	verifier Verifier

	ffmpegLocation string

	mu      sync.Mutex
	job     *model.Job
	stopCh  chan struct{}
	stopped bool
}

// NewService creates a coordinator with default throttling and no observer
func NewService(resolver Resolver, fetcher Fetcher) *Service {
	return &Service{
		resolver: resolver,
		fetcher:  fetcher,
		policy:   throttle.NewPolicy(),
		obs:      NopObserver(),
	}
}

// SetObserver sets the presentation boundary for log/status/progress events
func (s *Service) SetObserver(obs Observer) {
	if obs == nil {
		obs = NopObserver()
	}
	s.obs = obs
}

// SetPolicy replaces the dispatch/backoff policy
func (s *Service) SetPolicy(policy *throttle.Policy) {
	s.policy = policy
}

// SetVerifier sets the conversion tool check run before any item is
// processed
func (s *Service) SetVerifier(v Verifier) {
	s.verifier = v
}

// SetFFmpegLocation sets the ffmpeg directory handed to the extraction tool
func (s *Service) SetFFmpegLocation(dir string) {
	s.ffmpegLocation = dir
}

// Run processes the job to completion and returns one terminal outcome per
// resolved item, ordered by playlist position. Only job-level setup
// failures (bad URL, unreachable playlist, missing conversion tool) return
// an error; per-item failures are recorded in the outcomes.
func (s *Service) Run(ctx context.Context, job *model.Job) ([]model.Outcome, error) {
	if job == nil {
		return nil, fmt.Errorf("job cannot be nil")
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(); err != nil {
			return nil, fmt.Errorf("conversion tool unavailable: %w", err)
		}
	}

	if err := platform.EnsureDir(job.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", job.OutputDir, err)
	}

	stopCh := s.begin(job)

	s.obs.OnLog(fmt.Sprintf("Processing URL: %s", job.URL))
	s.obs.OnStatus("Resolving...")

	playlist, err := s.resolver.Resolve(ctx, job.URL)
	if err != nil {
		s.obs.OnLog(fmt.Sprintf("Error resolving URL: %v", err))
		return nil, fmt.Errorf("resolving %q: %w", job.URL, err)
	}

	total := playlist.Len()
	if total == 1 {
		s.obs.OnLog("Found single video")
	} else {
		s.obs.OnLog(fmt.Sprintf("Found playlist with %d videos", total))
	}
	s.obs.OnStatus(fmt.Sprintf("Processing %d item(s)", total))
	s.obs.OnProgress(0, total)

	outcomes := make([]model.Outcome, total)
	tally := model.NewTally(total)
	opts := FetchOptions{
		OutputDir:      job.OutputDir,
		Quality:        job.Quality,
		FFmpegLocation: s.ffmpegLocation,
		CookieBrowser:  job.CookieBrowser,
	}

	queue := make(chan *model.PlaylistItem)
	results := make(chan model.Outcome)

	go func() {
		for _, item := range playlist.Items {
			queue <- item
		}
		close(queue)
	}()

	workers := job.Workers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, job, queue, results, opts, total, stopCh)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		if outcome.Position >= 1 && outcome.Position <= total {
			outcomes[outcome.Position-1] = outcome
		}
		tally.Apply(outcome)
		counts := tally.Snapshot()
		s.obs.OnProgress(counts.Accounted(), counts.Total)
	}

	s.finish(job, tally.Snapshot())
	return outcomes, nil
}

// worker drains the item queue. Once cancellation is observed, remaining
// items are recorded as not attempted without contacting the extraction
// tool.
func (s *Service) worker(ctx context.Context, job *model.Job, queue <-chan *model.PlaylistItem, results chan<- model.Outcome, opts FetchOptions, total int, stopCh <-chan struct{}) {
	for item := range queue {
		task := &itemTask{
			job:     job,
			item:    item,
			total:   total,
			fetcher: s.fetcher,
			policy:  s.policy,
			obs:     s.obs,
			opts:    opts,
			stop:    stopCh,
		}

		if task.cancelled(ctx) {
			results <- model.Outcome{ItemID: item.ID, Position: item.Position, Kind: model.OutcomeNotAttempted}
			continue
		}

		// politeness delay between dispatches
		if !task.sleep(ctx, s.policy.NextDispatchDelay()) {
			results <- model.Outcome{ItemID: item.ID, Position: item.Position, Kind: model.OutcomeNotAttempted}
			continue
		}

		results <- task.run(ctx)
	}
}

// Stop requests cooperative cancellation of the running job.
// Already-dispatched items finish their current attempt; no new items are
// dispatched and no further retries begin.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job != nil {
		s.job.Cancel()
	}
	if s.stopCh != nil && !s.stopped {
		close(s.stopCh)
		s.stopped = true
	}
}

// begin registers the job so Stop can reach it and returns the run's stop
// channel
func (s *Service) begin(job *model.Job) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.job = job
	s.stopCh = make(chan struct{})
	s.stopped = false
	if job.Cancelled() {
		close(s.stopCh)
		s.stopped = true
	}
	return s.stopCh
}

// finish emits the end-of-run summary
func (s *Service) finish(job *model.Job, counts model.Counts) {
	s.obs.OnLog("Summary: " + counts.Summary())
	if job.Cancelled() {
		s.obs.OnLog("Download cancelled by user")
		s.obs.OnStatus("Cancelled")
		return
	}
	if counts.Failed > 0 {
		s.obs.OnLog(fmt.Sprintf("Failed to download %d item(s)", counts.Failed))
	}
	if counts.Skipped > 0 {
		s.obs.OnLog(fmt.Sprintf("Skipped %d item(s)", counts.Skipped))
	}
	s.obs.OnLog("All downloads completed!")
	s.obs.OnStatus("Completed")
}
