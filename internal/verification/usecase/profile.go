package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/shared/constant"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

type ProfileOutput struct {
	ID                 int64
	FullName           string
	Phone              string
	PolicyStatus       entity.PolicyStatus
	PolicyAcknowledged bool
}

// Profile returns the authenticated employee's own record.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermVerificationProfile, constant.PermActRead)
	if err != nil {
		return nil, err
	}

	emp, err := s.repoDB.GetEmployeeByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "employee no longer exists", "employee_id", clm.UserID)
		return nil, goerror.NewBusiness("employee not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get employee by id", "employee_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		ID:                 emp.ID,
		FullName:           emp.FullName,
		Phone:              emp.Phone,
		PolicyStatus:       emp.PolicyStatus,
		PolicyAcknowledged: emp.PolicyAcknowledged,
	}, nil
}
