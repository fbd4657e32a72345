package event

import "time"

// ChallengeIssuedDestination is the destination for challenge issued events.
const ChallengeIssuedDestination = "verification_challenge_issued"

// ChallengeIssued is published after a verification challenge has been
// dispatched and stored for an employee.
type ChallengeIssued struct {
	EmployeeID int64     `json:"employee_id"`
	Phone      string    `json:"phone"`
	Kind       string    `json:"kind"`
	ExpiresAt  time.Time `json:"expires_at"`
}
