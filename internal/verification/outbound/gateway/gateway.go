// Package gateway contains SMS delivery adapters used to dispatch and
// verify one-time codes.
package gateway

import (
	"context"
	"errors"

	"github.com/staffgate/staffgate/internal/verification/entity"
)

// ErrVerifyUnsupported is returned by drivers that transmit locally
// generated codes and therefore cannot verify codes remotely.
var ErrVerifyUnsupported = errors.New("gateway: remote verification not supported by this driver")

// Gateway dispatches verification codes to a phone number.
//
// Drivers come in two shapes. Local-code drivers transmit a code that was
// generated in-process, so Send receives the code and Verify is never used.
// Gateway drivers let the provider generate and check the code, so Send
// returns a dispatch token and Verify checks a candidate code against it.
type Gateway interface {
	// Kind reports which challenge kind this driver produces.
	Kind() entity.ChallengeKind

	// Send dispatches a verification message to the phone number. For
	// gateway drivers the returned token identifies the dispatch and the
	// code argument is ignored.
	Send(ctx context.Context, phone, code string) (string, error)

	// Verify checks a candidate code against a dispatch token. Local-code
	// drivers return ErrVerifyUnsupported.
	Verify(ctx context.Context, token, code string) (bool, error)
}
