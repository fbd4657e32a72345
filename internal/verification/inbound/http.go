package inbound

import (
	"context"

	"github.com/staffgate/staffgate/internal/pkg/router"
	"github.com/staffgate/staffgate/internal/verification/usecase"
)

type uc interface {
	ChallengeRequest(ctx context.Context, in usecase.ChallengeRequestInput) (*usecase.ChallengeRequestOutput, error)
	ChallengeVerify(ctx context.Context, in usecase.ChallengeVerifyInput) (*usecase.ChallengeVerifyOutput, error)

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
	PolicySubmit(ctx context.Context, in usecase.PolicySubmitInput) (*usecase.PolicySubmitOutput, error)

	AdminLogin(ctx context.Context, in usecase.AdminLoginInput) (*usecase.AdminLoginOutput, error)
	EmployeeList(ctx context.Context, in usecase.EmployeeListInput) (*usecase.EmployeeListOutput, error)
	EmployeeCreate(ctx context.Context, in usecase.EmployeeCreateInput) (*usecase.EmployeeCreateOutput, error)
	EmployeeUpdate(ctx context.Context, in usecase.EmployeeUpdateInput) error
	EmployeeDelete(ctx context.Context, in usecase.EmployeeDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Employee verification flow
	r.POST("/api/v1/employee/send-otp", end.SendOTP)
	r.POST("/api/v1/employee/verify-otp", end.VerifyOTP)
	r.GET("/api/v1/employee/me", end.Profile)
	r.POST("/api/v1/employee/submit-policy", end.SubmitPolicy)

	// Back office
	r.POST("/api/v1/admin/login", end.AdminLogin)
	r.GET("/api/v1/admin/employees", end.EmployeeList)
	r.POST("/api/v1/admin/employees", end.EmployeeCreate)
	r.PUT("/api/v1/admin/employees/:id", end.EmployeeUpdate)
	r.DELETE("/api/v1/admin/employees/:id", end.EmployeeDelete)
}
