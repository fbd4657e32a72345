package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
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
	"github.com/staffgate/staffgate/internal/shared/constant"
	"github.com/staffgate/staffgate/internal/verification/entity"
)

const testConfigYAML = `
jwt:
  ttl_minutes: 15
modules:
  verification:
    otp_ttl_minutes: 5
    otp_length: 6
    max_challenges_per_day: 3
    dispatch_lock_seconds: 30
    employee_session_ttl_hours: 12
    admin_session_ttl_hours: 8
    admin_static_enabled: false
    admin_static_username: root
    admin_static_password: super-secret
`

var testNow = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

type fakeRepo struct {
	getEmployeeByPhone  func(ctx context.Context, phone string) (*entity.Employee, error)
	getEmployeeByID     func(ctx context.Context, id int64) (*entity.Employee, error)
	getEmployeeList     func(ctx context.Context, limit, offset int32) ([]entity.Employee, error)
	getAdminByUsername  func(ctx context.Context, username string) (*entity.Admin, error)
	claimChallengeSlot  func(ctx context.Context, id int64, dayStart, now time.Time, maxPerDay int32) (bool, error)
	releaseSlot         func(ctx context.Context, id int64) error
	storeChallenge      func(ctx context.Context, id int64, ch entity.Challenge) error
	clearChallenge      func(ctx context.Context, id int64) (bool, error)
	updatePolicyStatus  func(ctx context.Context, id int64, status entity.PolicyStatus, acknowledged bool) error
	createEmployee      func(ctx context.Context, emp entity.NewEmployee) error
	updateEmployee      func(ctx context.Context, id int64, patch entity.PatchEmployee) error
	deleteEmployee      func(ctx context.Context, id int64) error
	releasedChallengeID int64
}

func (f *fakeRepo) GetEmployeeByPhone(ctx context.Context, phone string) (*entity.Employee, error) {
	return f.getEmployeeByPhone(ctx, phone)
}

func (f *fakeRepo) GetEmployeeByID(ctx context.Context, id int64) (*entity.Employee, error) {
	return f.getEmployeeByID(ctx, id)
}

func (f *fakeRepo) GetEmployeeList(ctx context.Context, limit, offset int32) ([]entity.Employee, error) {
	return f.getEmployeeList(ctx, limit, offset)
}

func (f *fakeRepo) GetAdminByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	return f.getAdminByUsername(ctx, username)
}

func (f *fakeRepo) ClaimChallengeSlot(ctx context.Context, id int64, dayStart, now time.Time, maxPerDay int32) (bool, error) {
	return f.claimChallengeSlot(ctx, id, dayStart, now, maxPerDay)
}

func (f *fakeRepo) ReleaseChallengeSlot(ctx context.Context, id int64) error {
	f.releasedChallengeID = id
	if f.releaseSlot != nil {
		return f.releaseSlot(ctx, id)
	}
	return nil
}

func (f *fakeRepo) StoreChallenge(ctx context.Context, id int64, ch entity.Challenge) error {
	return f.storeChallenge(ctx, id, ch)
}

func (f *fakeRepo) ClearChallenge(ctx context.Context, id int64) (bool, error) {
	return f.clearChallenge(ctx, id)
}

func (f *fakeRepo) UpdatePolicyStatus(ctx context.Context, id int64, status entity.PolicyStatus, acknowledged bool) error {
	return f.updatePolicyStatus(ctx, id, status, acknowledged)
}

func (f *fakeRepo) CreateEmployee(ctx context.Context, emp entity.NewEmployee) error {
	return f.createEmployee(ctx, emp)
}

func (f *fakeRepo) UpdateEmployee(ctx context.Context, id int64, patch entity.PatchEmployee) error {
	return f.updateEmployee(ctx, id, patch)
}

func (f *fakeRepo) DeleteEmployee(ctx context.Context, id int64) error {
	return f.deleteEmployee(ctx, id)
}

type fakeMessaging struct {
	issued   []ChallengeIssuedEvent
	recorded []PolicyRecordedEvent
}

func (f *fakeMessaging) PublishChallengeIssued(_ context.Context, msg ChallengeIssuedEvent) error {
	f.issued = append(f.issued, msg)
	return nil
}

func (f *fakeMessaging) PublishPolicyRecorded(_ context.Context, msg PolicyRecordedEvent) error {
	f.recorded = append(f.recorded, msg)
	return nil
}

type fakeGateway struct {
	kind     entity.ChallengeKind
	sendFn   func(ctx context.Context, phone, code string) (string, error)
	verifyFn func(ctx context.Context, token, code string) (bool, error)
}

func (f *fakeGateway) Kind() entity.ChallengeKind {
	return f.kind
}

func (f *fakeGateway) Send(ctx context.Context, phone, code string) (string, error) {
	if f.sendFn != nil {
		return f.sendFn(ctx, phone, code)
	}
	return "", nil
}

func (f *fakeGateway) Verify(ctx context.Context, token, code string) (bool, error) {
	if f.verifyFn != nil {
		return f.verifyFn(ctx, token, code)
	}
	return false, nil
}

// passThroughIdemp runs the operation directly without coordination.
type passThroughIdemp struct {
	execErr error
}

func (p *passThroughIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (p *passThroughIdemp) MarkCompleted(context.Context, string, time.Duration) error {
	return nil
}

func (p *passThroughIdemp) MarkFailed(context.Context, string, time.Duration) error {
	return nil
}

func (p *passThroughIdemp) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if p.execErr != nil {
		return p.execErr
	}
	return fn(ctx)
}

type testHarness struct {
	uc        *Usecase
	repo      *fakeRepo
	gateway   *fakeGateway
	messaging *fakeMessaging
	idemp     *passThroughIdemp
	clock     *stubClock
	goroutine *goroutine.Manager
	jwt       jwt.JWT
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		t.Fatalf("failed to build casbin model: %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("failed to build casbin enforcer: %v", err)
	}

	if _, err := e.AddPolicies([][]string{
		{constant.RoleAdmin, constant.PermVerificationEmployees, "*"},
		{constant.RoleEmployee, constant.PermVerificationProfile, constant.PermActRead},
		{constant.RoleEmployee, constant.PermVerificationPolicy, constant.PermActSubmit},
	}); err != nil {
		t.Fatalf("failed to add casbin policies: %v", err)
	}

	return e
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	clk := &stubClock{now: testNow}

	tokenizer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "staffgate-test",
		Audiences: []string{"staffgate"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	repo := &fakeRepo{}
	gw := &fakeGateway{kind: entity.ChallengeKindLocalCode}
	msg := &fakeMessaging{}
	idemp := &passThroughIdemp{}
	grm := goroutine.NewManager(4)

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		Idempotency:   idemp,
		Validator:     v10,
		Config:        cfg,
		Gateway:       gw,
		HMAC:          hash.NewHMACSHA256("test-hmac-secret"),
		Bcrypt:        hash.NewBcrypt(4, "test-pepper"),
		UID:           mustSnowflake(t),
		OTP:           otp.NewNumeric(6),
		Clock:         clk,
		JWT:           tokenizer,
		Instrument:    instrument.NewNoop(),
		Enforcer:      newTestEnforcer(t),
		Goroutine:     grm,
	})

	return &testHarness{
		uc:        uc,
		repo:      repo,
		gateway:   gw,
		messaging: msg,
		idemp:     idemp,
		clock:     clk,
		goroutine: grm,
		jwt:       tokenizer,
	}
}

func mustSnowflake(t *testing.T) uid.NumberID {
	t.Helper()

	snow, err := uid.NewSnowflake()
	if err != nil {
		t.Fatalf("failed to build snowflake: %v", err)
	}
	return snow
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %v, got nil", want)
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror, got %T: %v", err, err)
	}

	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (%v)", want, gerr.Code(), err)
	}
}

func authContext(t *testing.T, h *testHarness, userID int64, role string) context.Context {
	t.Helper()

	token, err := h.jwt.Generate(userID, role, 0)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := h.jwt.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	return jwt.SetAuth(context.Background(), claims)
}
