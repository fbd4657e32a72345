package usecase

import (
	"context"
	"log/slog"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/shared/constant"
)

type EmployeeDeleteInput struct {
	ID int64 `validate:"required,gt=0"`
}

// EmployeeDelete removes an employee. Deleting an already removed employee
// succeeds so retries stay idempotent.
func (s *Usecase) EmployeeDelete(ctx context.Context, in EmployeeDeleteInput) error {
	ctx, span := s.startSpan(ctx, "EmployeeDelete")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermVerificationEmployees, constant.PermActDelete); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.DeleteEmployee(ctx, in.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete employee", "employee_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
