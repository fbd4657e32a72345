package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/shared/constant"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

type PolicySubmitInput struct {
	Status string `validate:"required,oneof=agreed disagreed"`
}

type PolicySubmitOutput struct {
	Status             entity.PolicyStatus
	PolicyAcknowledged bool
}

// PolicySubmit records the authenticated employee's policy decision.
// Resubmitting overwrites the previous decision, last write wins.
func (s *Usecase) PolicySubmit(ctx context.Context, in PolicySubmitInput) (*PolicySubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "PolicySubmit")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermVerificationPolicy, constant.PermActSubmit)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	status := entity.PolicyStatusFromString(in.Status)
	if !status.IsDecision() {
		return nil, goerror.NewBusiness("policy decision must be agreed or disagreed", goerror.CodeInvalidInput)
	}

	// Acknowledged records that the employee responded at all; the decision
	// itself lives in the status.
	err = s.repoDB.UpdatePolicyStatus(ctx, clm.UserID, status, true)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "employee no longer exists", "employee_id", clm.UserID)
		return nil, goerror.NewBusiness("employee not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update policy status", "employee_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishPolicyRecorded(ctx, PolicyRecordedEvent{
			EmployeeID: clm.UserID,
			Status:     status,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish policy recorded event", "employee_id", clm.UserID, "error", err)
		}

		return nil
	})

	return &PolicySubmitOutput{
		Status:             status,
		PolicyAcknowledged: true,
	}, nil
}
