package model

// OutcomeKind classifies the terminal result of processing one playlist item
type OutcomeKind string

const (
	// OutcomeSuccess means the MP3 file was written
	OutcomeSuccess OutcomeKind = "Success"

	// OutcomeSkippedExists means the output file was already present and
	// the item was skipped without contacting the extraction tool
	OutcomeSkippedExists OutcomeKind = "SkippedAlreadyExists"

	// OutcomeSkippedAgeRestricted means the source refused the item as
	// age-restricted
	OutcomeSkippedAgeRestricted OutcomeKind = "SkippedAgeRestricted"

	// OutcomeSkippedAuthRequired means the source demanded authentication.
	// Kept distinct from age restriction so the two can be reported and
	// policed separately.
	OutcomeSkippedAuthRequired OutcomeKind = "SkippedAuthRequired"

	// OutcomeFailed means all retry attempts were exhausted
	OutcomeFailed OutcomeKind = "FailedExhaustedRetries"

	// OutcomeCancelled means the user stopped the job while this item was
	// in flight
	OutcomeCancelled OutcomeKind = "Cancelled"

	// OutcomeNotAttempted means the job was stopped before this item was
	// ever dispatched
	OutcomeNotAttempted OutcomeKind = "NotAttempted"
)

// String returns the string representation of the outcome kind
func (k OutcomeKind) String() string {
	return string(k)
}

// IsSkip returns true for outcomes that were deliberately not downloaded
func (k OutcomeKind) IsSkip() bool {
	return k == OutcomeSkippedExists || k == OutcomeSkippedAgeRestricted || k == OutcomeSkippedAuthRequired
}

// Outcome is the terminal classification of one playlist item. It is
// assigned exactly once and reported to the coordinator as data; per-item
// errors never propagate as faults.
type Outcome struct {
	ItemID     string
	Position   int    // 1-based ordinal of the item within the playlist
	Kind       OutcomeKind
	OutputPath string // set for OutcomeSuccess
	Attempts   int    // number of calls made to the extraction tool
	Err        error  // last error for OutcomeFailed
}
