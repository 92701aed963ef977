package domain

import "fmt"

// Role is the fixed set of actor roles. It replaces ad-hoc string
// comparisons: authorization goes through Can, not through comparing
// role values at call sites.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// Capability names an action a role may perform on workflow entry points.
type Capability string

const (
	CapApplyLeave          Capability = "leave:apply"
	CapReviewLeaveRequests Capability = "leave:review"
	CapViewTeamReports     Capability = "reports:team"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleEmployee: {
		CapApplyLeave: true,
	},
	RoleManager: {
		CapApplyLeave:          true,
		CapReviewLeaveRequests: true,
		CapViewTeamReports:     true,
	},
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleManager:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func (r Role) Can(cap Capability) bool {
	return roleCapabilities[r][cap]
}
