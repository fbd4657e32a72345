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

type EmployeeCreateInput struct {
	FullName string `validate:"required,min=2,max=100,alphaspace"`
	Phone    string `validate:"required,phone"`
}

type EmployeeCreateOutput struct {
	ID int64
}

// EmployeeCreate registers a new employee with a pending policy status.
func (s *Usecase) EmployeeCreate(ctx context.Context, in EmployeeCreateInput) (*EmployeeCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "EmployeeCreate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermVerificationEmployees, constant.PermActCreate); err != nil {
		return nil, err
	}

	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = entity.NormalizePhone(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	emp := entity.NewEmployee{
		ID:       s.uid.Generate(),
		FullName: in.FullName,
		Phone:    in.Phone,
	}

	err := s.repoDB.CreateEmployee(ctx, emp)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "phone number already registered", "phone", in.Phone)
		return nil, goerror.NewBusiness("phone number already registered", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create employee", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EmployeeCreateOutput{ID: emp.ID}, nil
}
