// Package auth maps platform roles to permission tokens.
//
// Role capabilities are explicit data, not programmatic inheritance: a new
// role is added by extending the table, never by subtyping.
package auth

import "github.com/maintops/maintops/pkg/models"

// Permission is an action token checked against a role's grant set.
type Permission string

const (
	PermWorkOrderSubmit  Permission = "work_orders:submit"
	PermWorkOrderApprove Permission = "work_orders:approve"
	PermWorkOrderReject  Permission = "work_orders:reject"
	PermWorkOrderAssign  Permission = "work_orders:assign"
	PermWorkOrderExecute Permission = "work_orders:execute"
	PermScansRun         Permission = "scans:run"
	PermReportsView      Permission = "reports:view"
)

var rolePermissions = map[models.Role][]Permission{
	models.RoleAdmin: {
		PermWorkOrderSubmit,
		PermWorkOrderApprove,
		PermWorkOrderReject,
		PermWorkOrderAssign,
		PermWorkOrderExecute,
		PermScansRun,
		PermReportsView,
	},
	models.RoleSupervisor: {
		PermWorkOrderSubmit,
		PermWorkOrderExecute,
		PermScansRun,
		PermReportsView,
	},
	models.RoleTecnico: {
		PermWorkOrderSubmit,
		PermWorkOrderExecute,
	},
}

// HasPermission reports whether the role holds the permission. Unknown roles
// hold nothing.
func HasPermission(role models.Role, permission Permission) bool {
	for _, granted := range rolePermissions[role] {
		if granted == permission {
			return true
		}
	}

	return false
}

// HasAnyPermission reports whether the role holds at least one of the given
// permissions.
func HasAnyPermission(role models.Role, permissions ...Permission) bool {
	for _, permission := range permissions {
		if HasPermission(role, permission) {
			return true
		}
	}

	return false
}
