package constant

// Authorization objects used by the casbin enforcer.
const (
	PermVerificationEmployees = "verification:employees"
	PermVerificationProfile   = "verification:profile"
	PermVerificationPolicy    = "verification:policy"
)

// Authorization actions used by the casbin enforcer.
const (
	PermActRead   = "read"
	PermActCreate = "create"
	PermActUpdate = "update"
	PermActDelete = "delete"
	PermActSubmit = "submit"
)

// Role names embedded in session tokens.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)
