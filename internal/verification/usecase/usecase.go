package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/staffgate/staffgate/internal/pkg/clock"
	"github.com/staffgate/staffgate/internal/pkg/config"
	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/pkg/goroutine"
	"github.com/staffgate/staffgate/internal/pkg/hash"
	"github.com/staffgate/staffgate/internal/pkg/idempotency"
	"github.com/staffgate/staffgate/internal/pkg/instrument"
	"github.com/staffgate/staffgate/internal/pkg/jwt"
	"github.com/staffgate/staffgate/internal/pkg/otp"
	"github.com/staffgate/staffgate/internal/pkg/uid"
	"github.com/staffgate/staffgate/internal/pkg/validator"
	"github.com/staffgate/staffgate/internal/verification/entity"
	"github.com/staffgate/staffgate/internal/verification/outbound/gateway"
	"go.opentelemetry.io/otel/trace"
)

type ChallengeIssuedEvent struct {
	EmployeeID int64
	Phone      string
	Kind       entity.ChallengeKind
	ExpiresAt  time.Time
}

type PolicyRecordedEvent struct {
	EmployeeID int64
	Status     entity.PolicyStatus
}

type repoMessaging interface {
	PublishChallengeIssued(ctx context.Context, msg ChallengeIssuedEvent) error
	PublishPolicyRecorded(ctx context.Context, msg PolicyRecordedEvent) error
}

type repoDB interface {
	GetEmployeeByPhone(ctx context.Context, phone string) (*entity.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*entity.Employee, error)
	GetEmployeeList(ctx context.Context, limit, offset int32) ([]entity.Employee, error)
	GetAdminByUsername(ctx context.Context, username string) (*entity.Admin, error)

	ClaimChallengeSlot(ctx context.Context, id int64, dayStart, now time.Time, maxPerDay int32) (bool, error)
	ReleaseChallengeSlot(ctx context.Context, id int64) error
	StoreChallenge(ctx context.Context, id int64, ch entity.Challenge) error
	ClearChallenge(ctx context.Context, id int64) (bool, error)

	UpdatePolicyStatus(ctx context.Context, id int64, status entity.PolicyStatus, acknowledged bool) error

	CreateEmployee(ctx context.Context, emp entity.NewEmployee) error
	UpdateEmployee(ctx context.Context, id int64, patch entity.PatchEmployee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	gateway       gateway.Gateway
	hmac          hash.Hash
	bcrypt        hash.Hash
	uid           uid.NumberID
	otp           otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Gateway       gateway.Gateway
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	UID           uid.NumberID
	OTP           otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		gateway:       dep.Gateway,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Role, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
