package authz

import (
	"strings"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/middleware"
)

// EventAccess is the membership snapshot the event service builds from a
// loaded event before asking for a policy decision. Keeping it primitive
// avoids a dependency on the event models.
type EventAccess struct {
	OrganizerID   uint
	IsPublic      bool
	StaffUserIDs  []uint
	VendorUserIDs []uint
	GuestEmails   []string
}

// ===========================
// 👁️ CanViewEvent — pure read gate, first match wins:
// admin, organizer, staff member, vendor member, invited guest, then public.
func CanViewEvent(p *middleware.Principal, ev EventAccess) bool {
	if p.Role == auth.RoleAdmin {
		return true
	}
	if p.UserID == ev.OrganizerID {
		return true
	}
	if p.Role == auth.RoleStaff && containsID(ev.StaffUserIDs, p.UserID) {
		return true
	}
	if p.Role == auth.RoleVendor && containsID(ev.VendorUserIDs, p.UserID) {
		return true
	}
	if p.Role == auth.RoleAttendee && containsEmail(ev.GuestEmails, p.Email) {
		return true
	}
	return ev.IsPublic
}

// ===========================
// ✏️ CanModifyEvent — write gate, a strict narrowing of the read gate
func CanModifyEvent(p *middleware.Principal, organizerID uint) bool {
	return p.Role == auth.RoleAdmin || p.UserID == organizerID
}

// CanManageBudget follows the owning event's write gate
func CanManageBudget(p *middleware.Principal, eventOrganizerID uint) bool {
	return CanModifyEvent(p, eventOrganizerID)
}

// CanModifyTask allows the task creator and the elevated roles
func CanModifyTask(p *middleware.Principal, creatorID uint) bool {
	if p.UserID == creatorID {
		return true
	}
	return p.Role == auth.RoleAdmin || p.Role == auth.RoleOrganizer
}

// CanCompleteTask allows the assignee themselves or the task's creator
func CanCompleteTask(p *middleware.Principal, assigneeID, creatorID uint) bool {
	return p.UserID == assigneeID || p.UserID == creatorID
}

// CanManageVenue gates venue create/update
func CanManageVenue(p *middleware.Principal) bool {
	return p.Role == auth.RoleAdmin || p.Role == auth.RoleOrganizer
}

// CanDeactivateVenue gates the soft delete
func CanDeactivateVenue(p *middleware.Principal) bool {
	return p.Role == auth.RoleAdmin
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsEmail(emails []string, email string) bool {
	for _, candidate := range emails {
		if strings.EqualFold(candidate, email) {
			return true
		}
	}
	return false
}
