package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/pkg/idempotency"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

type ChallengeRequestInput struct {
	Phone string `validate:"required,phone"`
}

type ChallengeRequestOutput struct {
	ExpiresAt time.Time
}

// ChallengeRequest issues a verification challenge for a registered phone
// number: it claims a daily dispatch slot, sends the code through the
// configured SMS driver, and stores the challenge on the employee row.
func (s *Usecase) ChallengeRequest(ctx context.Context, in ChallengeRequestInput) (*ChallengeRequestOutput, error) {
	ctx, span := s.startSpan(ctx, "ChallengeRequest")
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

	var out *ChallengeRequestOutput
	var innerErr error

	execErr := s.idemp.Exec(ctx, "verification:dispatch:"+in.Phone, func(ctx context.Context) error {
		out, innerErr = s.issueChallenge(ctx, emp)
		return innerErr
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.verification.dispatch_lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.verification.dispatch_lock_seconds")),
	)

	switch {
	case execErr == nil:
		return out, nil
	case innerErr != nil:
		return nil, innerErr
	case errors.Is(execErr, idempotency.ErrAlreadyInProgress),
		errors.Is(execErr, idempotency.ErrAlreadyCompleted),
		errors.Is(execErr, idempotency.ErrAlreadyFailed):
		slog.WarnContext(ctx, "challenge dispatch already being processed", "employee_id", emp.ID)
		return nil, goerror.NewBusiness("a verification request is already being processed", goerror.CodeTooManyRequest)
	default:
		slog.ErrorContext(ctx, "failed to coordinate challenge dispatch", "employee_id", emp.ID, "error", execErr)
		return nil, goerror.NewServer(execErr)
	}
}

func (s *Usecase) issueChallenge(ctx context.Context, emp *entity.Employee) (*ChallengeRequestOutput, error) {
	now := s.clock.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	maxPerDay := s.cfg.GetInt32("modules.verification.max_challenges_per_day")
	if maxPerDay <= 0 {
		maxPerDay = 3
	}

	claimed, err := s.repoDB.ClaimChallengeSlot(ctx, emp.ID, dayStart, now, maxPerDay)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo claim challenge slot", "employee_id", emp.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !claimed {
		slog.WarnContext(ctx, "daily challenge limit reached", "employee_id", emp.ID)
		return nil, goerror.NewBusiness("daily verification limit reached, try again tomorrow", goerror.CodeTooManyRequest)
	}

	var code, secret string
	if s.gateway.Kind() == entity.ChallengeKindLocalCode {
		code, err = s.otp.Generate()
		if err != nil {
			s.releaseChallengeSlot(ctx, emp.ID)
			slog.ErrorContext(ctx, "failed to generate verification code", "employee_id", emp.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		codeHash, err := s.hmac.Hash(code)
		if err != nil {
			s.releaseChallengeSlot(ctx, emp.ID)
			slog.ErrorContext(ctx, "failed to hash verification code", "employee_id", emp.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		secret = string(codeHash)
	}

	token, err := s.gateway.Send(ctx, emp.Phone, code)
	if err != nil {
		s.releaseChallengeSlot(ctx, emp.ID)
		slog.ErrorContext(ctx, "failed to dispatch verification code", "employee_id", emp.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if s.gateway.Kind() == entity.ChallengeKindGateway {
		secret = token
	}

	ch := entity.Challenge{
		Kind:      s.gateway.Kind(),
		Secret:    secret,
		ExpiresAt: now.Add(s.cfg.GetMinute("modules.verification.otp_ttl_minutes")),
	}
	if err := s.repoDB.StoreChallenge(ctx, emp.ID, ch); err != nil {
		slog.ErrorContext(ctx, "failed to repo store challenge", "employee_id", emp.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishChallengeIssued(ctx, ChallengeIssuedEvent{
			EmployeeID: emp.ID,
			Phone:      emp.Phone,
			Kind:       ch.Kind,
			ExpiresAt:  ch.ExpiresAt,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish challenge issued event", "employee_id", emp.ID, "error", err)
		}

		return nil
	})

	return &ChallengeRequestOutput{ExpiresAt: ch.ExpiresAt}, nil
}

func (s *Usecase) releaseChallengeSlot(ctx context.Context, id int64) {
	if err := s.repoDB.ReleaseChallengeSlot(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to repo release challenge slot", "employee_id", id, "error", err)
	}
}
