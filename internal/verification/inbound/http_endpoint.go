package inbound

import (
	"github.com/samber/lo"
	"github.com/staffgate/staffgate/internal/pkg/router"
	"github.com/staffgate/staffgate/internal/verification/entity"
	"github.com/staffgate/staffgate/internal/verification/usecase"
)

// HTTPEndpoint exposes HTTP handlers for the verification and back-office workflows.
type HTTPEndpoint struct {
	uc uc
}

// SendOTP issues a verification challenge for a registered phone number.
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ChallengeRequest(r.Context(), usecase.ChallengeRequestInput{
		Phone: req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{ExpiresAt: resp.ExpiresAt}, nil
}

// VerifyOTP checks a submitted code and returns an employee session token.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ChallengeVerify(r.Context(), usecase.ChallengeVerifyInput{
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{AccessToken: resp.AccessToken}, nil
}

// Profile returns the authenticated employee's own record.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:                 resp.ID,
		FullName:           resp.FullName,
		Phone:              resp.Phone,
		PolicyStatus:       resp.PolicyStatus.String(),
		PolicyAcknowledged: resp.PolicyAcknowledged,
	}, nil
}

// SubmitPolicy records the authenticated employee's policy decision.
func (h *HTTPEndpoint) SubmitPolicy(r *router.Request) (any, error) {
	var req SubmitPolicyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PolicySubmit(r.Context(), usecase.PolicySubmitInput{
		Status: req.Status,
	})
	if err != nil {
		return nil, err
	}

	return SubmitPolicyResponse{
		Status:             resp.Status.String(),
		PolicyAcknowledged: resp.PolicyAcknowledged,
	}, nil
}

// AdminLogin authenticates a back-office operator.
func (h *HTTPEndpoint) AdminLogin(r *router.Request) (any, error) {
	var req AdminLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AdminLogin(r.Context(), usecase.AdminLoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return AdminLoginResponse{AccessToken: resp.AccessToken}, nil
}

// EmployeeList returns registered employees, optionally paged with the
// limit and offset query parameters.
func (h *HTTPEndpoint) EmployeeList(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.EmployeeList(r.Context(), usecase.EmployeeListInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(resp.Employees, func(emp entity.Employee, _ int) EmployeeItem {
		return EmployeeItem{
			ID:                 emp.ID,
			FullName:           emp.FullName,
			Phone:              emp.Phone,
			PolicyStatus:       emp.PolicyStatus.String(),
			PolicyAcknowledged: emp.PolicyAcknowledged,
			HasActiveChallenge: emp.Challenge != nil,
			LastChallengeAt:    emp.LastChallengeAt,
			UpdatedAt:          emp.UpdatedAt,
		}
	})

	return EmployeesResponse{Employees: items}, nil
}

// EmployeeCreate registers a new employee.
func (h *HTTPEndpoint) EmployeeCreate(r *router.Request) (any, error) {
	var req EmployeeCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EmployeeCreate(r.Context(), usecase.EmployeeCreateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return EmployeeCreateResponse{ID: resp.ID}, nil
}

// EmployeeUpdate applies a partial update to an employee.
func (h *HTTPEndpoint) EmployeeUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req EmployeeUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.EmployeeUpdate(r.Context(), usecase.EmployeeUpdateInput{
		ID:       id,
		FullName: req.FullName,
		Phone:    req.Phone,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// EmployeeDelete removes an employee.
func (h *HTTPEndpoint) EmployeeDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.EmployeeDelete(r.Context(), usecase.EmployeeDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}
