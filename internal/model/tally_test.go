package model

import (
	"errors"
	"sync"
	"testing"
)

func TestTally_Apply(t *testing.T) {
	tally := NewTally(5)

	outcomes := []Outcome{
		{Kind: OutcomeSuccess},
		{Kind: OutcomeSuccess},
		{Kind: OutcomeSkippedExists},
		{Kind: OutcomeSkippedAgeRestricted},
		{Kind: OutcomeFailed, Err: errors.New("network down")},
	}

	for _, o := range outcomes {
		tally.Apply(o)
	}

	counts := tally.Snapshot()
	if counts.Completed != 2 {
		t.Errorf("Expected 2 completed, got %d", counts.Completed)
	}
	if counts.Skipped != 2 {
		t.Errorf("Expected 2 skipped, got %d", counts.Skipped)
	}
	if counts.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", counts.Failed)
	}
	if !counts.Settled() {
		t.Errorf("Expected tally to be settled, accounted %d of %d", counts.Accounted(), counts.Total)
	}
}

func TestTally_AccountedNeverExceedsTotal(t *testing.T) {
	tally := NewTally(3)

	tally.Apply(Outcome{Kind: OutcomeSuccess})
	counts := tally.Snapshot()
	if counts.Accounted() > counts.Total {
		t.Errorf("Accounted %d exceeds total %d", counts.Accounted(), counts.Total)
	}
	if counts.Settled() {
		t.Error("Tally should not be settled with 1 of 3 items accounted")
	}
}

func TestTally_ConcurrentApply(t *testing.T) {
	const workers = 8
	const perWorker = 100

	tally := NewTally(workers * perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tally.Apply(Outcome{Kind: OutcomeSuccess})
			}
		}()
	}
	wg.Wait()

	counts := tally.Snapshot()
	if counts.Completed != workers*perWorker {
		t.Errorf("Expected %d completed, got %d", workers*perWorker, counts.Completed)
	}
	if !counts.Settled() {
		t.Error("Expected tally to be settled after all workers reported")
	}
}

func TestCounts_Summary(t *testing.T) {
	tests := []struct {
		counts   Counts
		expected string
	}{
		{Counts{Total: 5, Completed: 2, Skipped: 2, Failed: 1}, "2 completed, 2 skipped, 1 failed"},
		{Counts{Total: 4, Completed: 1, Cancelled: 1, NotAttempted: 2}, "1 completed, 0 skipped, 0 failed, 1 cancelled, 2 not attempted"},
	}

	for _, test := range tests {
		if got := test.counts.Summary(); got != test.expected {
			t.Errorf("Summary() = %q, expected %q", got, test.expected)
		}
	}
}
