package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/pkg/hash"
	"github.com/staffgate/staffgate/internal/pkg/idempotency"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

func registeredEmployee() *entity.Employee {
	return &entity.Employee{
		ID:           7,
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		PolicyStatus: entity.PolicyStatusPending,
	}
}

func TestChallengeRequest(t *testing.T) {
	t.Run("LocalCodeSuccess", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)

		var sentCode string
		var stored entity.Challenge
		h.gateway.sendFn = func(_ context.Context, phone, code string) (string, error) {
			if phone != "9876543210" {
				t.Fatalf("expected normalized phone, got %q", phone)
			}
			sentCode = code
			return "", nil
		}
		h.repo.getEmployeeByPhone = func(_ context.Context, phone string) (*entity.Employee, error) {
			if phone != "9876543210" {
				t.Fatalf("expected lookup by normalized phone, got %q", phone)
			}
			return registeredEmployee(), nil
		}
		h.repo.claimChallengeSlot = func(_ context.Context, id int64, dayStart, now time.Time, maxPerDay int32) (bool, error) {
			wantDayStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
			if !dayStart.Equal(wantDayStart) {
				t.Fatalf("expected day start %v, got %v", wantDayStart, dayStart)
			}
			if maxPerDay != 3 {
				t.Fatalf("expected max per day 3, got %d", maxPerDay)
			}
			return true, nil
		}
		h.repo.storeChallenge = func(_ context.Context, id int64, ch entity.Challenge) error {
			stored = ch
			return nil
		}

		// Act: country code and separators must not matter.
		out, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "+91 98765-43210"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.ExpiresAt.Equal(testNow.Add(5 * time.Minute)) {
			t.Fatalf("expected expiry 5 minutes from now, got %v", out.ExpiresAt)
		}
		if len(sentCode) != 6 {
			t.Fatalf("expected 6 digit code, got %q", sentCode)
		}
		if stored.Kind != entity.ChallengeKindLocalCode {
			t.Fatalf("expected local code challenge, got %v", stored.Kind)
		}
		if !hash.NewHMACSHA256("test-hmac-secret").Verify(stored.Secret, sentCode) {
			t.Fatalf("stored secret is not the HMAC of the dispatched code")
		}

		if err := h.goroutine.Wait(); err != nil {
			t.Fatalf("unexpected goroutine error: %v", err)
		}
		if len(h.messaging.issued) != 1 || h.messaging.issued[0].EmployeeID != 7 {
			t.Fatalf("expected one challenge issued event for employee 7, got %+v", h.messaging.issued)
		}
	})

	t.Run("GatewayKindStoresDispatchToken", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.gateway.kind = entity.ChallengeKindGateway
		h.gateway.sendFn = func(_ context.Context, _, code string) (string, error) {
			if code != "" {
				t.Fatalf("expected no local code for gateway driver, got %q", code)
			}
			return "dispatch-token-1", nil
		}

		var stored entity.Challenge
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return registeredEmployee(), nil
		}
		h.repo.claimChallengeSlot = func(context.Context, int64, time.Time, time.Time, int32) (bool, error) {
			return true, nil
		}
		h.repo.storeChallenge = func(_ context.Context, _ int64, ch entity.Challenge) error {
			stored = ch
			return nil
		}

		// Act
		_, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "9876543210"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Kind != entity.ChallengeKindGateway || stored.Secret != "dispatch-token-1" {
			t.Fatalf("expected gateway challenge with dispatch token, got %+v", stored)
		}
	})

	t.Run("UnknownPhone", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return nil, goerror.ErrNotFound
		}

		// Act
		_, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "9876543210"})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("DailyLimitReached", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return registeredEmployee(), nil
		}
		h.repo.claimChallengeSlot = func(context.Context, int64, time.Time, time.Time, int32) (bool, error) {
			return false, nil
		}

		// Act
		_, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "9876543210"})

		// Assert
		assertCode(t, err, goerror.CodeTooManyRequest)
	})

	t.Run("GatewayFailureReleasesSlot", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.gateway.sendFn = func(context.Context, string, string) (string, error) {
			return "", errors.New("provider unavailable")
		}
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return registeredEmployee(), nil
		}
		h.repo.claimChallengeSlot = func(context.Context, int64, time.Time, time.Time, int32) (bool, error) {
			return true, nil
		}

		// Act
		_, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "9876543210"})

		// Assert
		assertCode(t, err, goerror.CodeInternal)
		if h.repo.releasedChallengeID != 7 {
			t.Fatalf("expected claimed slot to be released for employee 7, got %d", h.repo.releasedChallengeID)
		}
	})

	t.Run("DispatchAlreadyInProgress", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.idemp.execErr = idempotency.ErrAlreadyInProgress
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return registeredEmployee(), nil
		}

		// Act
		_, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "9876543210"})

		// Assert
		assertCode(t, err, goerror.CodeTooManyRequest)
	})

	t.Run("CoordinationFailure", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.idemp.execErr = errors.New("redis unavailable")
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return registeredEmployee(), nil
		}

		// Act
		_, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "9876543210"})

		// Assert
		assertCode(t, err, goerror.CodeInternal)
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)

		// Act: too few digits after normalization.
		_, err := h.uc.ChallengeRequest(context.Background(), ChallengeRequestInput{Phone: "12-34"})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})
}
