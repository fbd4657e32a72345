package entity

// ChallengeKind identifies how an issued challenge must be verified.
type ChallengeKind int16

// Enumeration of ChallengeKind values.
const (
	ChallengeKindUnknown   ChallengeKind = iota // Unknown
	ChallengeKindLocalCode                      // LocalCode
	ChallengeKindGateway                        // Gateway
)

// String returns the lowercase wire name of the kind.
func (k ChallengeKind) String() string {
	switch k {
	case ChallengeKindLocalCode:
		return "local_code"
	case ChallengeKindGateway:
		return "gateway"
	default:
		return "unknown"
	}
}

// ChallengeKindFromString parses a wire name into a ChallengeKind.
func ChallengeKindFromString(s string) ChallengeKind {
	switch s {
	case "local_code":
		return ChallengeKindLocalCode
	case "gateway":
		return ChallengeKindGateway
	default:
		return ChallengeKindUnknown
	}
}

// PolicyStatus represents an employee's decision on the company policy.
type PolicyStatus int16

// Enumeration of PolicyStatus values.
const (
	PolicyStatusUnknown   PolicyStatus = iota // Unknown
	PolicyStatusPending                       // Pending
	PolicyStatusAgreed                        // Agreed
	PolicyStatusDisagreed                     // Disagreed
)

// String returns the lowercase wire name of the status.
func (p PolicyStatus) String() string {
	switch p {
	case PolicyStatusPending:
		return "pending"
	case PolicyStatusAgreed:
		return "agreed"
	case PolicyStatusDisagreed:
		return "disagreed"
	default:
		return "unknown"
	}
}

// PolicyStatusFromString parses a wire name into a PolicyStatus.
func PolicyStatusFromString(s string) PolicyStatus {
	switch s {
	case "pending":
		return PolicyStatusPending
	case "agreed":
		return PolicyStatusAgreed
	case "disagreed":
		return PolicyStatusDisagreed
	default:
		return PolicyStatusUnknown
	}
}

// IsDecision reports whether the status is an explicit employee decision.
func (p PolicyStatus) IsDecision() bool {
	return p == PolicyStatusAgreed || p == PolicyStatusDisagreed
}
