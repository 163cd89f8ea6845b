package go_certverify

import (
	"errors"
	"fmt"
	"testing"
)

// TestSentinelErrorsAreDistinct verifies each failure class is its own
// sentinel so the handshake driver can dispatch alerts with errors.Is.
func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrProtocol,
		ErrSchemeNotOffered,
		ErrTruncatedMessage,
		ErrMalformedMessage,
		ErrHashUnavailable,
		ErrSignatureVerification,
		ErrInvalidResume,
		ErrKeyOperation,
		ErrOperationPending,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Fatalf("sentinel %v matches %v", a, b)
			}
		}
	}
}

// TestSentinelErrorsSurviveWrapping verifies wrapped errors still match
// their sentinel.
func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("peer selected scheme 0x0807: %w", ErrSchemeNotOffered)
	if !errors.Is(wrapped, ErrSchemeNotOffered) {
		t.Fatal("wrapping broke errors.Is matching")
	}
}
