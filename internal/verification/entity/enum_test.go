package entity

import (
	"testing"
	"time"
)

func TestPolicyStatusRoundTrip(t *testing.T) {
	for _, status := range []PolicyStatus{PolicyStatusPending, PolicyStatusAgreed, PolicyStatusDisagreed} {
		if got := PolicyStatusFromString(status.String()); got != status {
			t.Fatalf("round trip for %v produced %v", status, got)
		}
	}

	if got := PolicyStatusFromString("nope"); got != PolicyStatusUnknown {
		t.Fatalf("expected unknown status, got %v", got)
	}
}

func TestPolicyStatusIsDecision(t *testing.T) {
	if !PolicyStatusAgreed.IsDecision() || !PolicyStatusDisagreed.IsDecision() {
		t.Fatalf("agreed and disagreed are decisions")
	}
	if PolicyStatusPending.IsDecision() || PolicyStatusUnknown.IsDecision() {
		t.Fatalf("pending and unknown are not decisions")
	}
}

func TestChallengeKindRoundTrip(t *testing.T) {
	for _, kind := range []ChallengeKind{ChallengeKindLocalCode, ChallengeKindGateway} {
		if got := ChallengeKindFromString(kind.String()); got != kind {
			t.Fatalf("round trip for %v produced %v", kind, got)
		}
	}
}

func TestChallengeIsExpired(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
	ch := Challenge{ExpiresAt: now.Add(5 * time.Minute)}

	if ch.IsExpired(now) {
		t.Fatalf("challenge should still be valid")
	}
	if ch.IsExpired(ch.ExpiresAt) {
		t.Fatalf("challenge is valid up to its expiry instant")
	}
	if !ch.IsExpired(ch.ExpiresAt.Add(time.Second)) {
		t.Fatalf("challenge should be expired after its expiry")
	}
}
