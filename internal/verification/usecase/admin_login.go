package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/staffgate/staffgate/internal/pkg/goerror"
	"github.com/staffgate/staffgate/internal/shared/constant"
)

type AdminLoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type AdminLoginOutput struct {
	AccessToken string
}

// AdminLogin authenticates a back-office operator and returns an admin
// session token.
func (s *Usecase) AdminLogin(ctx context.Context, in AdminLoginInput) (*AdminLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "AdminLogin")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(in.Username)
	adm, err := s.repoDB.GetAdminByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		return s.adminStaticLogin(ctx, username, in.Password)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get admin by username", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(adm.Password, in.Password) {
		slog.WarnContext(ctx, "admin password does not match", "admin_id", adm.ID)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(adm.ID, constant.RoleAdmin,
		s.cfg.GetHour("modules.verification.admin_session_ttl_hours"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "admin_id", adm.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AdminLoginOutput{AccessToken: token}, nil
}

// adminStaticLogin is a deprecated fallback for bootstrap environments
// without a seeded admin table. It is disabled unless explicitly enabled
// in configuration.
func (s *Usecase) adminStaticLogin(ctx context.Context, username, password string) (*AdminLoginOutput, error) {
	if !s.cfg.GetBool("modules.verification.admin_static_enabled") {
		slog.WarnContext(ctx, "admin account not found", "username", username)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	userOK := subtle.ConstantTimeCompare(
		[]byte(username), []byte(s.cfg.GetString("modules.verification.admin_static_username"))) == 1
	passOK := subtle.ConstantTimeCompare(
		[]byte(password), []byte(s.cfg.GetString("modules.verification.admin_static_password"))) == 1

	if !userOK || !passOK {
		slog.WarnContext(ctx, "static admin credentials do not match", "username", username)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	slog.WarnContext(ctx, "static admin credentials used, seed the admin table instead", "username", username)

	token, err := s.jwt.Generate(0, constant.RoleAdmin,
		s.cfg.GetHour("modules.verification.admin_session_ttl_hours"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AdminLoginOutput{AccessToken: token}, nil
}
