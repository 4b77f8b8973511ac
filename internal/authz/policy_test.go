package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/middleware"
)

func principal(id uint, role, email string) *middleware.Principal {
	return &middleware.Principal{UserID: id, Role: role, Email: email, IsActive: true}
}

func TestCanViewEvent(t *testing.T) {
	ev := EventAccess{
		OrganizerID:   10,
		IsPublic:      false,
		StaffUserIDs:  []uint{21, 22},
		VendorUserIDs: []uint{31},
		GuestEmails:   []string{"guest@example.com"},
	}

	tests := []struct {
		name string
		p    *middleware.Principal
		ev   EventAccess
		want bool
	}{
		{"admin always allowed", principal(99, auth.RoleAdmin, "a@x.com"), ev, true},
		{"organizer allowed", principal(10, auth.RoleOrganizer, "o@x.com"), ev, true},
		{"staff member allowed", principal(21, auth.RoleStaff, "s@x.com"), ev, true},
		{"staff non-member denied", principal(23, auth.RoleStaff, "s2@x.com"), ev, false},
		{"vendor member allowed", principal(31, auth.RoleVendor, "v@x.com"), ev, true},
		{"vendor non-member denied", principal(32, auth.RoleVendor, "v2@x.com"), ev, false},
		{"invited attendee allowed", principal(41, auth.RoleAttendee, "guest@example.com"), ev, true},
		{"guest email match is case-insensitive", principal(41, auth.RoleAttendee, "Guest@Example.COM"), ev, true},
		{"uninvited attendee denied on private event", principal(42, auth.RoleAttendee, "other@example.com"), ev, false},
		{
			"uninvited attendee allowed on public event",
			principal(42, auth.RoleAttendee, "other@example.com"),
			EventAccess{OrganizerID: 10, IsPublic: true},
			true,
		},
		{
			"guest match does not carry over to other roles",
			principal(50, auth.RoleStaff, "guest@example.com"),
			ev,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewEvent(tt.p, tt.ev))
		})
	}
}

func TestCanModifyEvent(t *testing.T) {
	assert.True(t, CanModifyEvent(principal(10, auth.RoleOrganizer, ""), 10))
	assert.True(t, CanModifyEvent(principal(1, auth.RoleAdmin, ""), 10))
	assert.False(t, CanModifyEvent(principal(11, auth.RoleOrganizer, ""), 10))
	assert.False(t, CanModifyEvent(principal(21, auth.RoleStaff, ""), 10))
}

func TestCanModifyTask(t *testing.T) {
	assert.True(t, CanModifyTask(principal(5, auth.RoleAttendee, ""), 5), "creator may edit own task")
	assert.True(t, CanModifyTask(principal(6, auth.RoleOrganizer, ""), 5))
	assert.True(t, CanModifyTask(principal(7, auth.RoleAdmin, ""), 5))
	assert.False(t, CanModifyTask(principal(8, auth.RoleStaff, ""), 5))
}

func TestCanCompleteTask(t *testing.T) {
	assert.True(t, CanCompleteTask(principal(5, auth.RoleStaff, ""), 5, 9), "assignee completes")
	assert.True(t, CanCompleteTask(principal(9, auth.RoleOrganizer, ""), 5, 9), "creator completes")
	assert.False(t, CanCompleteTask(principal(7, auth.RoleAdmin, ""), 5, 9))
}

func TestVenueGates(t *testing.T) {
	assert.True(t, CanManageVenue(principal(1, auth.RoleAdmin, "")))
	assert.True(t, CanManageVenue(principal(2, auth.RoleOrganizer, "")))
	assert.False(t, CanManageVenue(principal(3, auth.RoleVendor, "")))

	assert.True(t, CanDeactivateVenue(principal(1, auth.RoleAdmin, "")))
	assert.False(t, CanDeactivateVenue(principal(2, auth.RoleOrganizer, "")))
}
