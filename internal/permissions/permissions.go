package permissions

import "github.com/showcall/showcall-backend/internal/models"

type Capability string

const (
	CalendarView    Capability = "calendar:view"
	CalendarEdit    Capability = "calendar:edit"
	CalendarEditOwn Capability = "calendar:edit_own"
	UsersManage     Capability = "users:manage"
	ContentManage   Capability = "content:manage"
	StoreManage     Capability = "store:manage"
	BusinessEvents  Capability = "business:events"
)

// Set is a role's capability set.
type Set map[Capability]struct{}

func (s Set) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func newSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

var roleCapabilities = map[string]Set{
	models.RoleAdmin: newSet(
		CalendarView, CalendarEdit, UsersManage,
		ContentManage, StoreManage, BusinessEvents,
	),
	models.RoleStaff: newSet(
		CalendarView, CalendarEdit,
		ContentManage, StoreManage, BusinessEvents,
	),
	models.RoleTalent: newSet(
		CalendarView, CalendarEditOwn,
	),
	models.RoleBusiness: newSet(
		CalendarView, CalendarEditOwn, BusinessEvents,
	),
}

// ForRole maps a role to its fixed capability set. Unknown roles resolve to
// an empty set, so every permission check fails closed.
func ForRole(role string) Set {
	if caps, ok := roleCapabilities[role]; ok {
		return caps
	}
	return Set{}
}
