package entity

import "strings"

// subscriberLength is the number of trailing digits that identify a
// subscriber. Country codes and trunk prefixes are stripped so the same
// person matches regardless of how the number was typed.
const subscriberLength = 10

// NormalizePhone reduces a raw phone input to its canonical stored form:
// digits only, truncated to the trailing subscriber digits.
func NormalizePhone(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	digits := sb.String()
	if len(digits) > subscriberLength {
		return digits[len(digits)-subscriberLength:]
	}

	return digits
}
