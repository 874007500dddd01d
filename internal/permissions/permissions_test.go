package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/showcall/showcall-backend/internal/models"
)

func TestForRoleFailsClosed(t *testing.T) {
	for _, role := range []string{"", "superuser", "ADMIN", "Talent", "root"} {
		caps := ForRole(role)
		assert.Empty(t, caps, "role %q must resolve to no capabilities", role)
		assert.False(t, caps.Has(CalendarView))
		assert.False(t, caps.Has(UsersManage))
	}
}

func TestRoleCapabilitySets(t *testing.T) {
	tests := []struct {
		role  string
		has   []Capability
		lacks []Capability
	}{
		{
			role: models.RoleAdmin,
			has: []Capability{
				CalendarView, CalendarEdit, UsersManage,
				ContentManage, StoreManage, BusinessEvents,
			},
			lacks: []Capability{CalendarEditOwn},
		},
		{
			role: models.RoleStaff,
			has: []Capability{
				CalendarView, CalendarEdit,
				ContentManage, StoreManage, BusinessEvents,
			},
			lacks: []Capability{UsersManage, CalendarEditOwn},
		},
		{
			role:  models.RoleTalent,
			has:   []Capability{CalendarView, CalendarEditOwn},
			lacks: []Capability{CalendarEdit, UsersManage, ContentManage, StoreManage, BusinessEvents},
		},
		{
			role:  models.RoleBusiness,
			has:   []Capability{CalendarView, CalendarEditOwn, BusinessEvents},
			lacks: []Capability{CalendarEdit, UsersManage, ContentManage, StoreManage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			caps := ForRole(tt.role)
			for _, c := range tt.has {
				assert.True(t, caps.Has(c), "%s should have %s", tt.role, c)
			}
			for _, c := range tt.lacks {
				assert.False(t, caps.Has(c), "%s should not have %s", tt.role, c)
			}
		})
	}
}

func TestOnlyAdminManagesUsers(t *testing.T) {
	for _, role := range []string{models.RoleStaff, models.RoleTalent, models.RoleBusiness} {
		assert.False(t, ForRole(role).Has(UsersManage), "role %q", role)
	}
	assert.True(t, ForRole(models.RoleAdmin).Has(UsersManage))
}
