// Package verification wires the employee verification module: phone
// challenge issuance, code verification, policy acknowledgment, and the
// back-office employee administration endpoints.
package verification

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/staffgate/staffgate/internal/pkg/clock"
	"github.com/staffgate/staffgate/internal/pkg/config"
	"github.com/staffgate/staffgate/internal/pkg/goroutine"
	"github.com/staffgate/staffgate/internal/pkg/hash"
	"github.com/staffgate/staffgate/internal/pkg/idempotency"
	"github.com/staffgate/staffgate/internal/pkg/instrument"
	"github.com/staffgate/staffgate/internal/pkg/jwt"
	"github.com/staffgate/staffgate/internal/pkg/messaging"
	"github.com/staffgate/staffgate/internal/pkg/otp"
	"github.com/staffgate/staffgate/internal/pkg/router"
	"github.com/staffgate/staffgate/internal/pkg/uid"
	"github.com/staffgate/staffgate/internal/pkg/validator"
	"github.com/staffgate/staffgate/internal/verification/inbound"
	"github.com/staffgate/staffgate/internal/verification/outbound/db"
	"github.com/staffgate/staffgate/internal/verification/outbound/gateway"
	"github.com/staffgate/staffgate/internal/verification/outbound/mq"
	"github.com/staffgate/staffgate/internal/verification/usecase"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	OTP         otp.Generator              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	gw, err := gateway.NewFromDriver(dep.Config.GetString("modules.verification.gateway_driver"), gateway.FactoryOptions{
		Timeout: dep.Config.GetSecond("modules.verification.gateway_timeout_seconds"),
		MessageCentral: gateway.MessageCentralConfig{
			BaseURL:     dep.Config.GetString("modules.verification.message_central.base_url"),
			AuthToken:   dep.Config.GetString("modules.verification.message_central.auth_token"),
			CustomerID:  dep.Config.GetString("modules.verification.message_central.customer_id"),
			CountryCode: dep.Config.GetString("modules.verification.message_central.country_code"),
		},
		SMSDirect: gateway.SMSDirectConfig{
			BaseURL:  dep.Config.GetString("modules.verification.sms_direct.base_url"),
			APIKey:   dep.Config.GetString("modules.verification.sms_direct.api_key"),
			SenderID: dep.Config.GetString("modules.verification.sms_direct.sender_id"),
			Template: dep.Config.GetString("modules.verification.sms_direct.template"),
		},
	})
	if err != nil {
		return err
	}

	dbVerif := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbVerif,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Gateway:       gw,
		HMAC:          dep.HMAC,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Enforcer:      dep.Enforcer,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
