package domain_test

import (
	"testing"

	"github.com/shkhalid/maxerp/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Run("accepts known roles", func(t *testing.T) {
		role, err := domain.ParseRole("manager")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleManager, role)

		role, err = domain.ParseRole("employee")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleEmployee, role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := domain.ParseRole("admin")
		assert.Error(t, err)
	})
}

func TestRoleCan(t *testing.T) {
	t.Run("employee can only apply", func(t *testing.T) {
		assert.True(t, domain.RoleEmployee.Can(domain.CapApplyLeave))
		assert.False(t, domain.RoleEmployee.Can(domain.CapReviewLeaveRequests))
		assert.False(t, domain.RoleEmployee.Can(domain.CapViewTeamReports))
	})

	t.Run("manager holds every capability", func(t *testing.T) {
		assert.True(t, domain.RoleManager.Can(domain.CapApplyLeave))
		assert.True(t, domain.RoleManager.Can(domain.CapReviewLeaveRequests))
		assert.True(t, domain.RoleManager.Can(domain.CapViewTeamReports))
	})

	t.Run("unknown role has no capabilities", func(t *testing.T) {
		assert.False(t, domain.Role("admin").Can(domain.CapApplyLeave))
		assert.False(t, domain.Role("admin").Valid())
	})
}
