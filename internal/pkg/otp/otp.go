package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	minCodeLength = 4
	maxCodeLength = 10

	// DefaultCodeLength is used when no valid length is configured.
	DefaultCodeLength = 6
)

// Generator produces one-time passcodes.
type Generator interface {
	// Generate returns a new one-time passcode.
	Generate() (string, error)
}

// Numeric generates uniformly distributed numeric codes of a fixed length.
type Numeric struct {
	length int
	max    *big.Int
}

// NewNumeric returns a numeric code generator.
//
// length is clamped to [4, 10]; a non-positive value falls back to
// DefaultCodeLength.
func NewNumeric(length int) *Numeric {
	if length <= 0 {
		length = DefaultCodeLength
	}
	if length < minCodeLength {
		length = minCodeLength
	}
	if length > maxCodeLength {
		length = maxCodeLength
	}

	max := big.NewInt(10)
	max.Exp(max, big.NewInt(int64(length)), nil)

	return &Numeric{length: length, max: max}
}

// Generate returns a zero-padded numeric code drawn from crypto/rand.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", n.length, v), nil
}
