package gateway

import (
	"context"
	"log/slog"

	"github.com/staffgate/staffgate/internal/verification/entity"
)

// Log is a development driver that writes the code to the log instead of
// sending an SMS. Never enable it in production.
type Log struct{}

// NewLog constructs a Log driver.
func NewLog() *Log {
	return &Log{}
}

// Kind implements Gateway.
func (l *Log) Kind() entity.ChallengeKind {
	return entity.ChallengeKindLocalCode
}

// Send logs the code.
func (l *Log) Send(ctx context.Context, phone, code string) (string, error) {
	slog.InfoContext(ctx, "verification code dispatched to log", "phone", phone, "code", code)

	return "", nil
}

// Verify implements Gateway. Log cannot verify remotely.
func (l *Log) Verify(_ context.Context, _, _ string) (bool, error) {
	return false, ErrVerifyUnsupported
}
