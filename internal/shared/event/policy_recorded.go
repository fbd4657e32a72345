package event

// PolicyRecordedDestination is the destination for policy decision events.
const PolicyRecordedDestination = "verification_policy_recorded"

// PolicyRecorded is published after an employee records a policy decision.
type PolicyRecorded struct {
	EmployeeID int64  `json:"employee_id"`
	Status     string `json:"status"`
}
