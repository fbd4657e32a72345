package inbound

import (
	"net/http"
	"time"
)

type SendOTPRequest struct {
	Phone string `json:"phone"`
}

type SendOTPResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

func (SendOTPResponse) Message() string {
	return "A verification code has been sent to your phone."
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type VerifyOTPResponse struct {
	AccessToken string `json:"access_token"`
}

type ProfileResponse struct {
	ID                 int64  `json:"id,string"`
	FullName           string `json:"full_name"`
	Phone              string `json:"phone"`
	PolicyStatus       string `json:"policy_status"`
	PolicyAcknowledged bool   `json:"policy_acknowledged"`
}

type SubmitPolicyRequest struct {
	Status string `json:"status"`
}

type SubmitPolicyResponse struct {
	Status             string `json:"status"`
	PolicyAcknowledged bool   `json:"policy_acknowledged"`
}

func (SubmitPolicyResponse) Message() string {
	return "Your policy decision has been recorded."
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	AccessToken string `json:"access_token"`
}

type EmployeeItem struct {
	ID                 int64      `json:"id,string"`
	FullName           string     `json:"full_name"`
	Phone              string     `json:"phone"`
	PolicyStatus       string     `json:"policy_status"`
	PolicyAcknowledged bool       `json:"policy_acknowledged"`
	HasActiveChallenge bool       `json:"has_active_challenge"`
	LastChallengeAt    *time.Time `json:"last_challenge_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type EmployeesResponse struct {
	Employees []EmployeeItem `json:"employees"`
}

func (r EmployeesResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Employees)}
}

type EmployeeCreateRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type EmployeeCreateResponse struct {
	ID int64 `json:"id,string"`
}

func (EmployeeCreateResponse) StatusCode() int {
	return http.StatusCreated
}

func (EmployeeCreateResponse) Message() string {
	return "Employee has been registered."
}

type EmployeeUpdateRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}
