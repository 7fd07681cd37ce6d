package download

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected failureClass
	}{
		{"sentinel age restricted", ErrAgeRestricted, failureAgeRestricted},
		{"sentinel auth required", ErrAuthRequired, failureAuthRequired},
		{"wrapped sentinel", fmt.Errorf("fetch failed: %w", ErrAgeRestricted), failureAgeRestricted},
		{"age restricted text", errors.New("ERROR: This video is age-restricted"), failureAgeRestricted},
		{"confirm age text", errors.New("Sign in to confirm your age"), failureAgeRestricted},
		{"sign in text", errors.New("ERROR: Sign in to continue"), failureAuthRequired},
		{"login required text", errors.New("login required for this resource"), failureAuthRequired},
		{"network error", errors.New("dial tcp: connection refused"), failureTransient},
		{"rate limited", errors.New("HTTP Error 429: Too Many Requests"), failureTransient},
		{"timeout", errors.New("context deadline exceeded"), failureTransient},
		{"unknown", errors.New("something unexpected"), failureTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := classifyFailure(test.err); got != test.expected {
				t.Errorf("classifyFailure(%v) = %d, expected %d", test.err, got, test.expected)
			}
		})
	}
}

// "Sign in to confirm your age" carries both an age and an auth phrase;
// age restriction wins so the two outcomes stay distinct.
func TestClassifyFailure_AgeTakesPrecedenceOverAuth(t *testing.T) {
	err := errors.New("Sign in to confirm your age. This video may be inappropriate for some users.")
	if got := classifyFailure(err); got != failureAgeRestricted {
		t.Errorf("classifyFailure() = %d, expected failureAgeRestricted", got)
	}
}
