package model

import "time"

// Role is the global position of a user within the company.
// It is a separate authorization axis from per-ledger membership:
// admin-only routes check the role, ledger record access checks membership.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleEditor      Role = "editor"
	RoleTypesetter  Role = "typesetter"
	RolePrinter     Role = "printer"
	RoleProcurement Role = "procurement"
	RoleWarehouse   Role = "warehouse"
	RoleSales       Role = "sales"
	RoleHR          Role = "hr"
)

// ValidRoles lists every role an account may be provisioned with.
var ValidRoles = []Role{
	RoleAdmin, RoleEditor, RoleTypesetter, RolePrinter,
	RoleProcurement, RoleWarehouse, RoleSales, RoleHR,
}

// IsValidRole reports whether r is one of the known positions.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // The hash is never exposed in JSON responses.
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
