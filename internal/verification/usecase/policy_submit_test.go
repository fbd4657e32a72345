package usecase

import (
	"context"
	"testing"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

func TestPolicySubmit(t *testing.T) {
	t.Run("AgreedSetsAcknowledged", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")

		var gotStatus entity.PolicyStatus
		var gotAck bool
		h.repo.updatePolicyStatus = func(_ context.Context, id int64, status entity.PolicyStatus, acknowledged bool) error {
			if id != 7 {
				t.Fatalf("expected update for employee 7, got %d", id)
			}
			gotStatus, gotAck = status, acknowledged
			return nil
		}

		// Act
		out, err := h.uc.PolicySubmit(ctx, PolicySubmitInput{Status: "agreed"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotStatus != entity.PolicyStatusAgreed || !gotAck {
			t.Fatalf("expected agreed and acknowledged, got %v %v", gotStatus, gotAck)
		}
		if out.Status != entity.PolicyStatusAgreed || !out.PolicyAcknowledged {
			t.Fatalf("unexpected output %+v", out)
		}

		if err := h.goroutine.Wait(); err != nil {
			t.Fatalf("unexpected goroutine error: %v", err)
		}
		if len(h.messaging.recorded) != 1 || h.messaging.recorded[0].Status != entity.PolicyStatusAgreed {
			t.Fatalf("expected policy recorded event, got %+v", h.messaging.recorded)
		}
	})

	t.Run("DisagreedStillAcknowledged", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")

		var gotStatus entity.PolicyStatus
		var gotAck bool
		h.repo.updatePolicyStatus = func(_ context.Context, _ int64, status entity.PolicyStatus, acknowledged bool) error {
			gotStatus, gotAck = status, acknowledged
			return nil
		}

		// Act: resubmitting after agreeing overwrites, last write wins.
		out, err := h.uc.PolicySubmit(ctx, PolicySubmitInput{Status: "disagreed"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotStatus != entity.PolicyStatusDisagreed {
			t.Fatalf("expected disagreed status, got %v", gotStatus)
		}
		if !gotAck || !out.PolicyAcknowledged {
			t.Fatalf("any recorded decision counts as acknowledged")
		}
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")

		// Act
		_, err := h.uc.PolicySubmit(ctx, PolicySubmitInput{Status: "maybe"})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)

		// Act
		_, err := h.uc.PolicySubmit(context.Background(), PolicySubmitInput{Status: "agreed"})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("AdminRoleForbidden", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 42, "admin")

		// Act
		_, err := h.uc.PolicySubmit(ctx, PolicySubmitInput{Status: "agreed"})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})
}

func TestProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")

		h.repo.getEmployeeByID = func(_ context.Context, id int64) (*entity.Employee, error) {
			if id != 7 {
				t.Fatalf("expected lookup for employee 7, got %d", id)
			}
			emp := registeredEmployee()
			emp.PolicyStatus = entity.PolicyStatusAgreed
			emp.PolicyAcknowledged = true
			return emp, nil
		}

		// Act
		out, err := h.uc.Profile(ctx)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ID != 7 || out.FullName != "Asha Rao" || !out.PolicyAcknowledged {
			t.Fatalf("unexpected profile %+v", out)
		}
	})

	t.Run("EmployeeRemoved", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)
		ctx := authContext(t, h, 7, "employee")
		h.repo.getEmployeeByID = func(context.Context, int64) (*entity.Employee, error) {
			return nil, goerror.ErrNotFound
		}

		// Act
		_, err := h.uc.Profile(ctx)

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		h := newTestHarness(t)

		// Act
		_, err := h.uc.Profile(context.Background())

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}
