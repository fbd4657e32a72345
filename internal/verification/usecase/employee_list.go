package usecase

import (
	"context"
	"log/slog"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/shared/constant"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

type EmployeeListInput struct {
	// Limit caps the page size, zero returns the whole directory.
	Limit  int32 `validate:"gte=0,lte=500"`
	Offset int32 `validate:"gte=0"`
}

type EmployeeListOutput struct {
	Employees []entity.Employee
}

// EmployeeList returns registered employees for the back office, ordered by
// name, optionally windowed by limit and offset.
func (s *Usecase) EmployeeList(ctx context.Context, in EmployeeListInput) (*EmployeeListOutput, error) {
	ctx, span := s.startSpan(ctx, "EmployeeList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermVerificationEmployees, constant.PermActRead); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	emps, err := s.repoDB.GetEmployeeList(ctx, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get employee list", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EmployeeListOutput{Employees: emps}, nil
}
