package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/shared/constant"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

type ChallengeVerifyInput struct {
	Phone string `validate:"required,phone"`
	Code  string `validate:"required,numeric,min=4,max=10"`
}

type ChallengeVerifyOutput struct {
	AccessToken string
}

// ChallengeVerify checks a submitted code against the employee's active
// challenge and, on success, clears the challenge and returns a session
// token. A mismatched code keeps the challenge intact so the employee can
// retry until it expires.
func (s *Usecase) ChallengeVerify(ctx context.Context, in ChallengeVerifyInput) (*ChallengeVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "ChallengeVerify")
	defer span.End()

	in.Phone = entity.NormalizePhone(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	emp, err := s.repoDB.GetEmployeeByPhone(ctx, in.Phone)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "phone number is not registered", "phone", in.Phone)
		return nil, goerror.NewBusiness("phone number is not registered", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get employee by phone", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	if emp.Challenge == nil {
		slog.WarnContext(ctx, "no active verification challenge", "employee_id", emp.ID)
		return nil, goerror.NewBusiness("no active verification challenge", goerror.CodeUnauthorized)
	}

	if emp.Challenge.IsExpired(s.clock.Now()) {
		slog.WarnContext(ctx, "verification challenge has expired", "employee_id", emp.ID)
		return nil, goerror.NewBusiness("verification code has expired", goerror.CodeUnauthorized)
	}

	var matched bool
	switch emp.Challenge.Kind {
	case entity.ChallengeKindLocalCode:
		matched = s.hmac.Verify(emp.Challenge.Secret, in.Code)

	case entity.ChallengeKindGateway:
		matched, err = s.gateway.Verify(ctx, emp.Challenge.Secret, in.Code)
		if err != nil {
			slog.ErrorContext(ctx, "failed to verify code with gateway", "employee_id", emp.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

	default:
		slog.ErrorContext(ctx, "challenge kind is unrecognized", "employee_id", emp.ID, "kind", emp.Challenge.Kind)
		return nil, goerror.NewServer(errors.New("challenge kind is unrecognized"))
	}

	if !matched {
		slog.WarnContext(ctx, "verification code does not match", "employee_id", emp.ID)
		return nil, goerror.NewBusiness("verification code is incorrect", goerror.CodeUnauthorized)
	}

	cleared, err := s.repoDB.ClearChallenge(ctx, emp.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo clear challenge", "employee_id", emp.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !cleared {
		slog.WarnContext(ctx, "challenge already consumed", "employee_id", emp.ID)
		return nil, goerror.NewBusiness("no active verification challenge", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(emp.ID, constant.RoleEmployee,
		s.cfg.GetHour("modules.verification.employee_session_ttl_hours"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "employee_id", emp.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ChallengeVerifyOutput{AccessToken: token}, nil
}
