package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/pkg/hash"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

func employeeWithLocalChallenge(t *testing.T, code string, expiresAt time.Time) *entity.Employee {
	t.Helper()

	secret, err := hash.NewHMACSHA256("test-hmac-secret").Hash(code)
	if err != nil {
		t.Fatalf("failed to hash code: %v", err)
	}

	emp := registeredEmployee()
	emp.Challenge = &entity.Challenge{
		Kind:      entity.ChallengeKindLocalCode,
		Secret:    string(secret),
		ExpiresAt: expiresAt,
	}
	return emp
}

func TestChallengeVerify(t *testing.T) {
	t.Run("SuccessClearsChallengeAndIssuesToken", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return employeeWithLocalChallenge(t, "482913", testNow.Add(2*time.Minute)), nil
		}

		var clearedID int64
		h.repo.clearChallenge = func(_ context.Context, id int64) (bool, error) {
			clearedID = id
			return true, nil
		}

		// Act
		out, err := h.uc.ChallengeVerify(context.Background(), ChallengeVerifyInput{
			Phone: "9876543210",
			Code:  "482913",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if clearedID != 7 {
			t.Fatalf("expected challenge cleared for employee 7, got %d", clearedID)
		}

		claims, err := h.jwt.Verify(out.AccessToken)
		if err != nil {
			t.Fatalf("expected valid session token: %v", err)
		}
		if claims.UserID != 7 || claims.Role != "employee" {
			t.Fatalf("expected employee session for user 7, got %+v", claims)
		}
	})

	t.Run("NoActiveChallenge", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return registeredEmployee(), nil
		}

		// Act
		_, err := h.uc.ChallengeVerify(context.Background(), ChallengeVerifyInput{
			Phone: "9876543210",
			Code:  "482913",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("ExpiredChallenge", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return employeeWithLocalChallenge(t, "482913", testNow.Add(-time.Second)), nil
		}

		// Act: even the correct code must be rejected after expiry.
		_, err := h.uc.ChallengeVerify(context.Background(), ChallengeVerifyInput{
			Phone: "9876543210",
			Code:  "482913",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("MismatchKeepsChallenge", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return employeeWithLocalChallenge(t, "482913", testNow.Add(2*time.Minute)), nil
		}

		cleared := false
		h.repo.clearChallenge = func(context.Context, int64) (bool, error) {
			cleared = true
			return true, nil
		}

		// Act
		_, err := h.uc.ChallengeVerify(context.Background(), ChallengeVerifyInput{
			Phone: "9876543210",
			Code:  "111111",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
		if cleared {
			t.Fatalf("mismatched code must not clear the challenge")
		}
	})

	t.Run("ConcurrentVerifyLosesRace", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return employeeWithLocalChallenge(t, "482913", testNow.Add(2*time.Minute)), nil
		}
		h.repo.clearChallenge = func(context.Context, int64) (bool, error) {
			return false, nil
		}

		// Act: another request already consumed the challenge.
		_, err := h.uc.ChallengeVerify(context.Background(), ChallengeVerifyInput{
			Phone: "9876543210",
			Code:  "482913",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("GatewayKindDelegatesVerification", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.gateway.kind = entity.ChallengeKindGateway
		h.gateway.verifyFn = func(_ context.Context, token, code string) (bool, error) {
			if token != "dispatch-token-1" || code != "482913" {
				t.Fatalf("expected token/code forwarded to gateway, got %q %q", token, code)
			}
			return true, nil
		}

		emp := registeredEmployee()
		emp.Challenge = &entity.Challenge{
			Kind:      entity.ChallengeKindGateway,
			Secret:    "dispatch-token-1",
			ExpiresAt: testNow.Add(2 * time.Minute),
		}
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return emp, nil
		}
		h.repo.clearChallenge = func(context.Context, int64) (bool, error) {
			return true, nil
		}

		// Act
		out, err := h.uc.ChallengeVerify(context.Background(), ChallengeVerifyInput{
			Phone: "9876543210",
			Code:  "482913",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatalf("expected session token")
		}
	})

	t.Run("UnknownPhone", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		h.repo.getEmployeeByPhone = func(context.Context, string) (*entity.Employee, error) {
			return nil, goerror.ErrNotFound
		}

		// Act
		_, err := h.uc.ChallengeVerify(context.Background(), ChallengeVerifyInput{
			Phone: "9876543210",
			Code:  "482913",
		})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}
