package download

import (
	"errors"
	"strings"
)

// Sentinel errors a Fetcher may return directly. Free-text errors from the
// extraction tool are matched against known phrases instead.
var (
	// ErrAgeRestricted marks an item the source refuses as age-restricted
	ErrAgeRestricted = errors.New("age-restricted")

	// ErrAuthRequired marks an item the source refuses without authentication
	ErrAuthRequired = errors.New("authentication required")
)

// failureClass buckets a fetch error for the retry/skip policy
type failureClass int

const (
	// failureTransient is retried with backoff up to the attempt cap
	failureTransient failureClass = iota

	// failureAgeRestricted is skipped immediately, never retried
	failureAgeRestricted

	// failureAuthRequired is skipped immediately, never retried. Kept
	// separate from age restriction so the two surface as distinct
	// outcomes.
	failureAuthRequired
)

// Phrases the extraction tool emits for restricted content
var (
	ageRestrictedPhrases = []string{
		"age-restricted",
		"age restricted",
		"confirm your age",
	}
	authRequiredPhrases = []string{
		"sign in",
		"log in",
		"login required",
		"authentication",
		"account cookies",
	}
)

// classifyFailure buckets a fetch error. Anything not recognizably a
// restriction is treated as transient: network blips and upstream rate
// limits recover on retry, and a genuinely broken item simply exhausts its
// attempts and is recorded as failed.
func classifyFailure(err error) failureClass {
	if errors.Is(err, ErrAgeRestricted) {
		return failureAgeRestricted
	}
	if errors.Is(err, ErrAuthRequired) {
		return failureAuthRequired
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range ageRestrictedPhrases {
		if strings.Contains(msg, phrase) {
			return failureAgeRestricted
		}
	}
	for _, phrase := range authRequiredPhrases {
		if strings.Contains(msg, phrase) {
			return failureAuthRequired
		}
	}
	return failureTransient
}
