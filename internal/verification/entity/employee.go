package entity

import "time"

// Challenge is an outstanding verification challenge attached to an employee.
//
// For ChallengeKindLocalCode the Secret holds an HMAC of the one-time code.
// For ChallengeKindGateway the Secret holds the gateway dispatch token.
type Challenge struct {
	Kind      ChallengeKind
	Secret    string
	ExpiresAt time.Time
}

// IsExpired reports whether the challenge has passed its expiry.
func (c Challenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Employee is a registered employee record.
type Employee struct {
	ID                 int64
	FullName           string
	Phone              string
	Challenge          *Challenge
	ChallengeCount     int32
	LastChallengeAt    *time.Time
	PolicyStatus       PolicyStatus
	PolicyAcknowledged bool
	UpdatedAt          time.Time
}

// NewEmployee holds the fields required to register an employee.
type NewEmployee struct {
	ID       int64
	FullName string
	Phone    string
}

// PatchEmployee holds optional fields for a partial employee update.
type PatchEmployee struct {
	FullName *string
	Phone    *string
}

// Admin is a back-office operator account.
type Admin struct {
	ID       int64
	Username string
	Password string
}
