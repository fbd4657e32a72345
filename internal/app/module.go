package app

import (
	"log/slog"
	"os"

	"github.com/staffgate/staffgate/internal/verification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.verification.enabled") {
		if err := verification.New(verification.Dependency{
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Bcrypt:      a.bcrypt,
			HMAC:        a.hmac,
			Clock:       a.clock,
			OTP:         a.otp,
			Validator:   a.validator,
			Router:      a.router,
			DBConn:      a.dbConn,
			CacheConn:   a.cacheConn,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Goroutine:   a.goroutine,
			JWT:         a.jwt,
			Enforcer:    a.casbin,
		}); err != nil {
			slog.Error("failed to init module verification", "error", err)
			os.Exit(1)
		}
	}
}
