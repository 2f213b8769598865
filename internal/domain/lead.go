package domain

import (
	"time"

	"github.com/google/uuid"
)

// Compensation holds the structured salary range plus the original free text.
type Compensation struct {
	Min      *int
	Max      *int
	Currency string
	Raw      string
}

// Link is a titled URL attached to a lead.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Lead represents a job opportunity, either global (visible to everyone)
// or privately owned by the user who created it.
type Lead struct {
	ID                    uuid.UUID
	Title                 string
	Company               string
	Location              string
	Team                  string
	Compensation          Compensation
	ContactName           string
	ContactEmail          string
	AdditionalEmails      []string
	AdditionalLinks       []Link
	ContactLinkedIn       string
	SourceLink            string
	SourceApplicationLink string
	DatePosted            *time.Time
	Industry              string

	// Visibility. CreatedBy is a user id string or one of the sentinel
	// owners CreatorSystem / CreatorCommunity.
	IsGlobal  bool
	CreatedBy string
	SharedBy  *uuid.UUID
	SharedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisibleTo reports whether the lead may be read by the given viewer.
// An anonymous viewer is represented by uuid.Nil.
func (l *Lead) VisibleTo(viewerID uuid.UUID) bool {
	if l.IsGlobal || l.CreatedBy == CreatorSystem {
		return true
	}
	return viewerID != uuid.Nil && l.CreatedBy == viewerID.String()
}

// EditableBy reports whether the viewer may update the lead.
// Owners and admins may edit; system-owned leads are editable by any
// authenticated user (they carry no personal data).
func (l *Lead) EditableBy(viewerID uuid.UUID, role UserRole) bool {
	if viewerID == uuid.Nil {
		return false
	}
	if role.IsAdmin() || l.CreatedBy == CreatorSystem {
		return true
	}
	return l.CreatedBy == viewerID.String()
}

// LeadUpdateParams carries a partial lead update. Nil means "don't change".
type LeadUpdateParams struct {
	Title                 *string
	Company               *string
	Location              *string
	Team                  *string
	Compensation          *Compensation
	ContactName           *string
	ContactEmail          *string
	AdditionalEmails      *[]string
	AdditionalLinks       *[]Link
	ContactLinkedIn       *string
	SourceLink            *string
	SourceApplicationLink *string
	DatePosted            *time.Time
	Industry              *string

	// Admin-only. Services must refuse these for non-admin callers.
	IsGlobal  *bool
	CreatedBy *string
}
