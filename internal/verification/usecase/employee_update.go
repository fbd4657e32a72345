package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/shared/constant"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

type EmployeeUpdateInput struct {
	ID       int64   `validate:"required,gt=0"`
	FullName *string `validate:"omitempty,min=2,max=100,alphaspace"`
	Phone    *string `validate:"omitempty,phone"`
}

// EmployeeUpdate applies a partial update to an employee record.
func (s *Usecase) EmployeeUpdate(ctx context.Context, in EmployeeUpdateInput) error {
	ctx, span := s.startSpan(ctx, "EmployeeUpdate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermVerificationEmployees, constant.PermActUpdate); err != nil {
		return err
	}

	if in.FullName != nil {
		trimmed := strings.TrimSpace(*in.FullName)
		in.FullName = &trimmed
	}
	if in.Phone != nil {
		normalized := entity.NormalizePhone(*in.Phone)
		in.Phone = &normalized
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if in.FullName == nil && in.Phone == nil {
		return goerror.NewBusiness("nothing to update", goerror.CodeInvalidInput)
	}

	err := s.repoDB.UpdateEmployee(ctx, in.ID, entity.PatchEmployee{
		FullName: in.FullName,
		Phone:    in.Phone,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "employee not found", "employee_id", in.ID)
		return goerror.NewBusiness("employee not found", goerror.CodeNotFound)
	}
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "phone number already registered", "employee_id", in.ID)
		return goerror.NewBusiness("phone number already registered", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update employee", "employee_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
